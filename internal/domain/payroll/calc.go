package payroll

import "github.com/shopspring/decimal"

// Breakdown holds unrounded figures for one gross amount. Use Rounded
// when writing them out.
type Breakdown struct {
	Gross     decimal.Decimal `json:"gross"`
	IncomeTax decimal.Decimal `json:"incomeTax"`
	PRSI      decimal.Decimal `json:"prsi"`
	USC       decimal.Decimal `json:"usc"`
	UnionFee  decimal.Decimal `json:"unionFee"`
	Net       decimal.Decimal `json:"net"`
}

func (b Breakdown) TotalDeductions() decimal.Decimal {
	return b.IncomeTax.Add(b.PRSI).Add(b.USC).Add(b.UnionFee)
}

func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Gross:     b.Gross.Round(2),
		IncomeTax: b.IncomeTax.Round(2),
		PRSI:      b.PRSI.Round(2),
		USC:       b.USC.Round(2),
		UnionFee:  b.UnionFee.Round(2),
		Net:       b.Net.Round(2),
	}
}

// Compute applies every deduction to gross independently.
func Compute(gross decimal.Decimal) Breakdown {
	b := Breakdown{
		Gross:     gross,
		IncomeTax: IncomeTax(gross),
		PRSI:      PRSI(gross),
		USC:       USC(gross),
		UnionFee:  UnionFee(gross),
	}
	b.Net = gross.Sub(b.TotalDeductions())
	return b
}

// IncomeTax is 20% up to 42000 and 40% on the rest.
func IncomeTax(gross decimal.Decimal) decimal.Decimal {
	if gross.LessThanOrEqual(incomeTaxThreshold) {
		return gross.Mul(incomeTaxLowRate)
	}
	base := incomeTaxThreshold.Mul(incomeTaxLowRate)
	return base.Add(gross.Sub(incomeTaxThreshold).Mul(incomeTaxHighRate))
}

func PRSI(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(prsiRate)
}

// USC is banded at 12012, 25760 and 70044. Each band adds the full charge
// of the bands below it, so the function is continuous at the boundaries.
func USC(gross decimal.Decimal) decimal.Decimal {
	full1 := uscBand1.Mul(uscRate1)
	full2 := full1.Add(uscBand2.Sub(uscBand1).Mul(uscRate2))
	full3 := full2.Add(uscBand3.Sub(uscBand2).Mul(uscRate3))

	switch {
	case gross.LessThanOrEqual(uscBand1):
		return gross.Mul(uscRate1)
	case gross.LessThanOrEqual(uscBand2):
		return full1.Add(gross.Sub(uscBand1).Mul(uscRate2))
	case gross.LessThanOrEqual(uscBand3):
		return full2.Add(gross.Sub(uscBand2).Mul(uscRate3))
	default:
		return full3.Add(gross.Sub(uscBand3).Mul(uscRate4))
	}
}

func UnionFee(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(unionFeeRate)
}

// MonthlySalary is an annual salary spread over twelve payslips.
func MonthlySalary(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(monthsPerYear)
}
