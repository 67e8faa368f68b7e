package main

import (
	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/engine"
	"github.com/bankflowhq/bankflow/internal/model"
)

// addIntakeFlags registers the applicant intake flags shared by the decide
// and report commands. Categorical flags take the model's attribute codes;
// attributes the form does not collect keep their defaults.
func addIntakeFlags(cmd *cobra.Command) {
	cmd.Flags().String("id", "", "applicant national id (11 digits)")
	cmd.Flags().String("officer", "", "officer running the analysis")
	cmd.Flags().Float64("amount", 0, "requested credit amount")
	cmd.Flags().Int("duration", 0, "term in months")
	cmd.Flags().Float64("rate", 0, "annual interest rate in percent")
	cmd.Flags().Int("age", 0, "applicant age")
	cmd.Flags().Int("installment-rate", 2, "installment rate tier (1-4)")

	cmd.Flags().String("checking", string(model.CheckingNone), "checking account code (A11-A14)")
	cmd.Flags().String("history", string(model.CreditHistoryClean), "credit history code (A30-A34)")
	cmd.Flags().String("purpose", string(model.PurposeNewCar), "credit purpose code (A40-A410)")
	cmd.Flags().String("savings", string(model.SavingsUnknown), "savings account code (A61-A65)")
	cmd.Flags().String("employment", string(model.EmploymentOneToFour), "employment tenure code (A71-A75)")
	cmd.Flags().String("property", string(model.PropertyNone), "property code (A121-A124)")
	cmd.Flags().String("housing", string(model.HousingRent), "housing code (A151-A153)")
	cmd.Flags().String("job", string(model.JobSkilled), "job code (A171-A174)")

	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("officer")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("age")
}

// requestFromFlags assembles a decision request from the intake flags. The
// engine performs all validation.
func requestFromFlags(cmd *cobra.Command) engine.DecisionRequest {
	flags := cmd.Flags()

	rec := model.DefaultApplicantRecord()
	checking, _ := flags.GetString("checking")
	rec.CheckingAccount = model.CheckingStatus(checking)
	history, _ := flags.GetString("history")
	rec.CreditHistory = model.CreditHistory(history)
	purpose, _ := flags.GetString("purpose")
	rec.Purpose = model.Purpose(purpose)
	savings, _ := flags.GetString("savings")
	rec.SavingsAccount = model.Savings(savings)
	employment, _ := flags.GetString("employment")
	rec.Employment = model.Employment(employment)
	property, _ := flags.GetString("property")
	rec.Property = model.Property(property)
	housing, _ := flags.GetString("housing")
	rec.Housing = model.Housing(housing)
	job, _ := flags.GetString("job")
	rec.Job = model.Job(job)

	rec.Duration, _ = flags.GetInt("duration")
	rec.Age, _ = flags.GetInt("age")
	rec.InstallmentRate, _ = flags.GetInt("installment-rate")

	id, _ := flags.GetString("id")
	officer, _ := flags.GetString("officer")
	amount, _ := flags.GetFloat64("amount")
	rate, _ := flags.GetFloat64("rate")

	return engine.DecisionRequest{
		NationalID:   id,
		Officer:      officer,
		Record:       rec,
		Amount:       amount,
		InterestRate: rate,
	}
}
