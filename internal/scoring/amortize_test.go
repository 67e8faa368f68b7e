package scoring

import (
	"math"
	"testing"
)

func TestAmortize_StandardAnnuity(t *testing.T) {
	principal, months, rate := 100_000.0, 24, 3.99

	plan, err := Amortize(principal, months, rate)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}

	// Compute the expected payment from the annuity formula independently.
	r := rate / 100 / 12
	growth := math.Pow(1+r, float64(months))
	want := math.Round(principal*(r*growth)/(growth-1)*100) / 100

	if plan.MonthlyPayment != want {
		t.Errorf("MonthlyPayment = %.2f, want %.2f", plan.MonthlyPayment, want)
	}
	if got := math.Round(want*float64(months)*100) / 100; plan.TotalPayment != got {
		t.Errorf("TotalPayment = %.2f, want %.2f", plan.TotalPayment, got)
	}

	// Sanity band: a 3.99% 24-month loan costs a bit more than principal/24.
	if plan.MonthlyPayment <= principal/float64(months) {
		t.Errorf("MonthlyPayment %.2f should exceed zero-interest payment %.2f",
			plan.MonthlyPayment, principal/float64(months))
	}
	if plan.TotalPayment <= principal {
		t.Errorf("TotalPayment %.2f should exceed principal %.2f", plan.TotalPayment, principal)
	}
}

func TestAmortize_ZeroRate(t *testing.T) {
	plan, err := Amortize(12_000, 24, 0)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}

	if plan.MonthlyPayment != 500.00 {
		t.Errorf("MonthlyPayment = %.2f, want 500.00", plan.MonthlyPayment)
	}
	if plan.TotalPayment != 12_000.00 {
		t.Errorf("TotalPayment = %.2f, want 12000.00", plan.TotalPayment)
	}
}

func TestAmortize_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{name: "zero principal", principal: 0, months: 24, rate: 3.99},
		{name: "negative principal", principal: -1000, months: 24, rate: 3.99},
		{name: "zero months", principal: 10_000, months: 0, rate: 3.99},
		{name: "negative months", principal: 10_000, months: -12, rate: 3.99},
		{name: "negative rate", principal: 10_000, months: 24, rate: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Amortize(tt.principal, tt.months, tt.rate); err == nil {
				t.Error("Amortize() expected error, got nil")
			}
		})
	}
}
