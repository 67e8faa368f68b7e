package scoring

import (
	"github.com/bankflowhq/bankflow/internal/model"
)

// VIPAmountFloor is the scaled credit amount above which an executive with an
// excellent record gets the corporate-segment bonus instead of the standard
// executive bonus.
const VIPAmountFloor = 10000

// adjustmentRule is one policy adjustment. Rules are evaluated in table
// order, each independently additive; a rule that does not fire returns a
// zero delta and an empty message.
type adjustmentRule struct {
	apply func(*model.ApplicantRecord) (int, string)
	name  string
}

// adjustmentRules is the bank policy layer applied on top of the model score.
// Evaluation order is the table order; there is no early exit and no rule
// reads another rule's output.
var adjustmentRules = []adjustmentRule{
	{
		name: "employment_segment",
		apply: func(r *model.ApplicantRecord) (int, string) {
			switch {
			case r.Job == model.JobExecutive && r.CreditHistory == model.CreditHistoryExcellent:
				if r.CreditAmount > VIPAmountFloor {
					return 750, "VIP segment: corporate approval support (+750)"
				}
				return 300, "Income strength: executive status bonus (+300)"
			case r.Job == model.JobSkilled:
				return 150, "Employment: qualified staff bonus (+150)"
			}
			return 0, ""
		},
	},
	{
		name: "credit_history",
		apply: func(r *model.ApplicantRecord) (int, string) {
			switch r.CreditHistory {
			case model.CreditHistoryExcellent:
				return 250, "Credit record: flawless repayment history (+250)"
			case model.CreditHistoryCritical, model.CreditHistoryPoor, model.CreditHistoryWeak:
				return -450, "Critical risk: adverse bureau records (-450)"
			}
			return 0, ""
		},
	},
	{
		name: "collateral",
		apply: func(r *model.ApplicantRecord) (int, string) {
			if r.Housing == model.HousingOwner {
				return 150, "Collateral: real-estate security (+150)"
			}
			return 0, ""
		},
	},
	{
		name: "debt_burden",
		apply: func(r *model.ApplicantRecord) (int, string) {
			if r.InstallmentRate == 4 {
				return -250, "Debt burden: installments too high for income (-250)"
			}
			return 0, ""
		},
	},
}

// Compute applies the policy adjustment table to a raw model score and
// returns the clamped final score plus the messages of every rule that
// fired, in table order. The calculator is a pure function: identical
// inputs always produce identical scores and message ordering.
func Compute(rawScore int, rec *model.ApplicantRecord) (int, []string) {
	score := rawScore
	var messages []string

	for _, rule := range adjustmentRules {
		delta, msg := rule.apply(rec)
		if delta == 0 {
			continue
		}
		score += delta
		messages = append(messages, msg)
	}

	return ClampScore(score), messages
}
