package payroll

import "github.com/shopspring/decimal"

var (
	incomeTaxThreshold = decimal.NewFromInt(42000)
	incomeTaxLowRate   = decimal.RequireFromString("0.20")
	incomeTaxHighRate  = decimal.RequireFromString("0.40")

	prsiRate     = decimal.RequireFromString("0.041")
	unionFeeRate = decimal.RequireFromString("0.08")

	uscBand1 = decimal.NewFromInt(12012)
	uscBand2 = decimal.NewFromInt(25760)
	uscBand3 = decimal.NewFromInt(70044)
	uscRate1 = decimal.RequireFromString("0.005")
	uscRate2 = decimal.RequireFromString("0.02")
	uscRate3 = decimal.RequireFromString("0.04")
	uscRate4 = decimal.RequireFromString("0.08")

	monthsPerYear = decimal.NewFromInt(12)
	maxClaimHours = decimal.NewFromInt(160)
)

const (
	SkipNoStatus      = "no_employment_status"
	SkipAlreadyIssued = "already_issued"
)
