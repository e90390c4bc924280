package employee

import (
	"fmt"
	"strings"
)

type Employee struct {
	ID                 int    `json:"id"`
	Username           string `json:"username"`
	Name               string `json:"name"`
	DateOfBirth        string `json:"dateOfBirth"`
	NationalID         string `json:"nationalId"`
	JobTitle           string `json:"jobTitle"`
	ScalePoint         int    `json:"scalePoint"`
	PendingPromotion   bool   `json:"pendingPromotion"`
	PreviousJobTitle   string `json:"previousJobTitle,omitempty"`
	PreviousScalePoint int    `json:"previousScalePoint,omitempty"`
	YearsAtTopOfScale  int    `json:"yearsAtTopOfScale"`
}

type Position struct {
	JobTitle   string `json:"jobTitle"`
	ScalePoint int    `json:"scalePoint"`
}

func (e Employee) Position() Position {
	return Position{JobTitle: e.JobTitle, ScalePoint: e.ScalePoint}
}

func (e Employee) PreviousPosition() Position {
	return Position{JobTitle: e.PreviousJobTitle, ScalePoint: e.PreviousScalePoint}
}

// Kind selects the payslip path: salaried or hourly.
type Kind string

const (
	KindFullTime Kind = "Full-Time"
	KindPartTime Kind = "Part-Time"
)

func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "full-time", "fulltime", "salaried":
		return KindFullTime, nil
	case "part-time", "parttime", "hourly":
		return KindPartTime, nil
	default:
		return "", fmt.Errorf("unknown employment kind %q", raw)
	}
}
