package scoring

import (
	"fmt"
	"math"

	"github.com/bankflowhq/bankflow/internal/model"
)

// Amortize computes the fixed monthly payment and total repayment for a loan
// at the given annual percentage rate. A rate of exactly zero degenerates to
// straight division of principal over the term; negative inputs are rejected
// rather than fed into the annuity formula.
func Amortize(principal float64, months int, annualRatePct float64) (model.PaymentPlan, error) {
	if principal <= 0 {
		return model.PaymentPlan{}, fmt.Errorf("principal must be positive, got %.2f", principal)
	}
	if months <= 0 {
		return model.PaymentPlan{}, fmt.Errorf("duration must be positive, got %d months", months)
	}
	if annualRatePct < 0 {
		return model.PaymentPlan{}, fmt.Errorf("interest rate must not be negative, got %.2f%%", annualRatePct)
	}

	var payment float64
	if annualRatePct == 0 {
		payment = principal / float64(months)
	} else {
		r := annualRatePct / 100 / 12
		growth := math.Pow(1+r, float64(months))
		payment = principal * (r * growth) / (growth - 1)
	}

	return model.PaymentPlan{
		MonthlyPayment: round2(payment),
		TotalPayment:   round2(payment * float64(months)),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
