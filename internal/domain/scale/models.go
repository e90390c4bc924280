package scale

import "github.com/shopspring/decimal"

// Entry is one rung of a job title's pay ladder.
type Entry struct {
	JobTitle     string          `json:"jobTitle"`
	ScalePoint   int             `json:"scalePoint"`
	AnnualSalary decimal.Decimal `json:"annualSalary"`
}

// StandardAnnualHours converts an annual salary into an hourly rate.
const StandardAnnualHours = 2080

var Columns = []string{"jobTitle", "scalePoint", "annualSalary"}
