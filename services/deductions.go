package services

import (
	"github.com/shopspring/decimal"
)

// Statutory-style withholding rates applied to the gross amount.
var (
	IncomeTaxRate           = decimal.RequireFromString("0.05")
	NationalPensionRate     = decimal.RequireFromString("0.045")
	HealthInsuranceRate     = decimal.RequireFromString("0.0335")
	EmploymentInsuranceRate = decimal.RequireFromString("0.008")
)

type Deductions struct {
	IncomeTax           decimal.Decimal
	NationalPension     decimal.Decimal
	HealthInsurance     decimal.Decimal
	EmploymentInsurance decimal.Decimal
	Total               decimal.Decimal
}

// ComputeDeductions rounds each item to whole currency units on its own
// before summing, so Total can differ from rounding the summed rate.
func ComputeDeductions(totalAmount decimal.Decimal) Deductions {
	d := Deductions{
		IncomeTax:           roundHalfUp(totalAmount.Mul(IncomeTaxRate)),
		NationalPension:     roundHalfUp(totalAmount.Mul(NationalPensionRate)),
		HealthInsurance:     roundHalfUp(totalAmount.Mul(HealthInsuranceRate)),
		EmploymentInsurance: roundHalfUp(totalAmount.Mul(EmploymentInsuranceRate)),
	}
	d.Total = d.IncomeTax.Add(d.NationalPension).Add(d.HealthInsurance).Add(d.EmploymentInsurance)
	return d
}

// roundHalfUp rounds to whole units, ties away from zero. Never half-even.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
