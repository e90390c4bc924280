package employee

import (
	"fmt"
	"strconv"
	"strings"

	"hrpay/internal/platform/csvfile"
)

// Columns is the canonical column order of an employee row.
var Columns = []string{
	"id", "username", "name", "dob", "nationalId", "jobTitle", "scalePoint",
	"pendingPromotionFlag", "previousJobTitle", "previousScalePoint", "yearsAtTopOfScale",
}

func toRow(e Employee) []string {
	return []string{
		strconv.Itoa(e.ID),
		e.Username,
		e.Name,
		e.DateOfBirth,
		e.NationalID,
		e.JobTitle,
		strconv.Itoa(e.ScalePoint),
		flag(e.PendingPromotion),
		e.PreviousJobTitle,
		strconv.Itoa(e.PreviousScalePoint),
		strconv.Itoa(e.YearsAtTopOfScale),
	}
}

// fromRow decodes a stored row. Rows shorter than Columns come from older
// files and are padded with defaults.
func fromRow(row []string) (Employee, error) {
	row = csvfile.Pad(row, len(Columns))
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return Employee{}, fmt.Errorf("id %q: %w", row[0], err)
	}
	scalePoint, err := atoiDefault(row[6])
	if err != nil {
		return Employee{}, fmt.Errorf("scalePoint %q: %w", row[6], err)
	}
	previousPoint, err := atoiDefault(row[9])
	if err != nil {
		return Employee{}, fmt.Errorf("previousScalePoint %q: %w", row[9], err)
	}
	years, err := atoiDefault(row[10])
	if err != nil {
		return Employee{}, fmt.Errorf("yearsAtTopOfScale %q: %w", row[10], err)
	}
	return Employee{
		ID:                 id,
		Username:           row[1],
		Name:               row[2],
		DateOfBirth:        row[3],
		NationalID:         row[4],
		JobTitle:           row[5],
		ScalePoint:         scalePoint,
		PendingPromotion:   parseFlag(row[7]),
		PreviousJobTitle:   row[8],
		PreviousScalePoint: previousPoint,
		YearsAtTopOfScale:  years,
	}, nil
}

func atoiDefault(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
