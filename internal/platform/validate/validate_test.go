package validate

import (
	"errors"
	"testing"

	"hrpay/internal/apperr"
)

type sample struct {
	ID       string `json:"id" validate:"employee_id"`
	Username string `json:"username" validate:"required,username"`
	DOB      string `json:"dateOfBirth" validate:"ddmmyyyy"`
	PPS      string `json:"nationalId" validate:"min=7,max=8"`
	Hours    int    `json:"hours" validate:"min=0,max=160"`
}

func valid() sample {
	return sample{ID: "12345", Username: "j.doe", DOB: "31/01/1990", PPS: "1234567A", Hours: 40}
}

func TestStructAcceptsValid(t *testing.T) {
	if err := Struct(valid()); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestStructReportsField(t *testing.T) {
	cases := map[string]func(*sample){
		"id":          func(s *sample) { s.ID = "01234" },
		"username":    func(s *sample) { s.Username = "j doe" },
		"dateOfBirth": func(s *sample) { s.DOB = "1990-01-31" },
		"nationalId":  func(s *sample) { s.PPS = "123" },
		"hours":       func(s *sample) { s.Hours = 161 },
	}
	for field, mutate := range cases {
		s := valid()
		mutate(&s)
		err := Struct(s)
		var verr *apperr.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", field, err)
		}
		if verr.Field != field {
			t.Fatalf("expected field %s, got %s (%s)", field, verr.Field, verr.Reason)
		}
	}
}
