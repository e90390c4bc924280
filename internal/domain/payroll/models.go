package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	PayslipColumns = []string{"id", "name", "date", "jobTitle", "scalePoint", "grossPay", "incomeTax", "prsi", "usc", "unionFee", "netPay"}
	ClaimColumns   = []string{"username", "claimDate", "hoursWorked", "hourlyRate", "totalPay", "scalePoint"}
)

const claimDateLayout = "2006-01-02"

// Payslip is an issued, immutable pay record. Amounts are rounded to
// cents.
type Payslip struct {
	EmployeeID int             `json:"employeeId"`
	Name       string          `json:"name"`
	Period     string          `json:"period"`
	JobTitle   string          `json:"jobTitle"`
	ScalePoint int             `json:"scalePoint"`
	Gross      decimal.Decimal `json:"grossPay"`
	IncomeTax  decimal.Decimal `json:"incomeTax"`
	PRSI       decimal.Decimal `json:"prsi"`
	USC        decimal.Decimal `json:"usc"`
	UnionFee   decimal.Decimal `json:"unionFee"`
	Net        decimal.Decimal `json:"netPay"`
}

type Claim struct {
	Username   string          `json:"username"`
	Date       time.Time       `json:"claimDate"`
	Hours      decimal.Decimal `json:"hoursWorked"`
	Rate       decimal.Decimal `json:"hourlyRate"`
	Total      decimal.Decimal `json:"totalPay"`
	ScalePoint int             `json:"scalePoint"`
}

type Skip struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

type Failure struct {
	Username string `json:"username"`
	Error    string `json:"error"`
}

// Report summarises one generation pass.
type Report struct {
	Period  string    `json:"period"`
	Written []Payslip `json:"written"`
	NoClaim []string  `json:"noClaim"`
	Skipped []Skip    `json:"skipped"`
	Failed  []Failure `json:"failed"`
}
