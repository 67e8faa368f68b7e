// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Categorical attribute types. Values are the statlog attribute codes the
// trained model was fitted on; the UI layer maps human labels onto them.
type (
	// CheckingStatus describes the applicant's checking account standing.
	CheckingStatus string
	// CreditHistory describes the applicant's repayment record.
	CreditHistory string
	// Purpose is the stated purpose of the requested credit.
	Purpose string
	// Savings describes the applicant's savings balance band.
	Savings string
	// Employment is the applicant's employment tenure band.
	Employment string
	// PersonalStatus combines marital status and sex.
	PersonalStatus string
	// Guarantor describes other debtors or guarantors on the application.
	Guarantor string
	// Property is the applicant's most valuable declared asset.
	Property string
	// OtherInstallments describes installment plans held elsewhere.
	OtherInstallments string
	// Housing is the applicant's housing situation.
	Housing string
	// Job is the applicant's occupational category.
	Job string
	// Telephone indicates whether a telephone is registered.
	Telephone string
	// ForeignWorker indicates foreign-worker status.
	ForeignWorker string
)

// Checking account codes.
const (
	CheckingNegative CheckingStatus = "A11"
	CheckingLow      CheckingStatus = "A12"
	CheckingHigh     CheckingStatus = "A13"
	CheckingNone     CheckingStatus = "A14"
)

// Credit history codes.
const (
	CreditHistoryCritical  CreditHistory = "A30"
	CreditHistoryPoor      CreditHistory = "A31"
	CreditHistoryClean     CreditHistory = "A32"
	CreditHistoryWeak      CreditHistory = "A33"
	CreditHistoryExcellent CreditHistory = "A34"
)

// Purpose codes.
const (
	PurposeNewCar     Purpose = "A40"
	PurposeUsedCar    Purpose = "A41"
	PurposeFurniture  Purpose = "A42"
	PurposeAppliances Purpose = "A43"
	PurposeRepairs    Purpose = "A48"
	PurposeEducation  Purpose = "A46"
	PurposeBusiness   Purpose = "A49"
	PurposeOther      Purpose = "A410"
)

// Savings codes.
const (
	SavingsLow      Savings = "A61"
	SavingsMedium   Savings = "A62"
	SavingsHigh     Savings = "A63"
	SavingsVeryHigh Savings = "A64"
	SavingsUnknown  Savings = "A65"
)

// Employment tenure codes.
const (
	EmploymentNone        Employment = "A71"
	EmploymentUnderOne    Employment = "A72"
	EmploymentOneToFour   Employment = "A73"
	EmploymentFourToSeven Employment = "A74"
	EmploymentOverSeven   Employment = "A75"
)

// Personal status codes.
const (
	StatusFemale      PersonalStatus = "A92"
	StatusMaleSingle  PersonalStatus = "A93"
	StatusMaleMarried PersonalStatus = "A94"
)

// Guarantor codes.
const (
	GuarantorNone      Guarantor = "A101"
	GuarantorCoApplied Guarantor = "A102"
	GuarantorPresent   Guarantor = "A103"
)

// Property codes.
const (
	PropertyRealEstate Property = "A121"
	PropertyInsurance  Property = "A122"
	PropertyVehicle    Property = "A123"
	PropertyNone       Property = "A124"
)

// Other installment plan codes.
const (
	InstallmentsBank   OtherInstallments = "A141"
	InstallmentsStores OtherInstallments = "A142"
	InstallmentsNone   OtherInstallments = "A143"
)

// Housing codes.
const (
	HousingRent    Housing = "A151"
	HousingOwner   Housing = "A152"
	HousingCompany Housing = "A153"
)

// Job codes.
const (
	JobExecutive          Job = "A171"
	JobUnskilledResident  Job = "A172"
	JobSkilled            Job = "A173"
	JobUnskilledTransient Job = "A174"
)

// Telephone codes.
const (
	TelephoneNone       Telephone = "A191"
	TelephoneRegistered Telephone = "A192"
)

// Foreign worker codes.
const (
	ForeignWorkerYes ForeignWorker = "A201"
	ForeignWorkerNo  ForeignWorker = "A202"
)

// validCodes maps every categorical attribute to its declared code set.
// Validation rejects anything outside these sets so an invalid code is a
// construction-time error instead of a silent encoder miss.
var validCodes = map[string]map[string]bool{
	"checking_account":   codeSet("A11", "A12", "A13", "A14"),
	"credit_history":     codeSet("A30", "A31", "A32", "A33", "A34"),
	"purpose":            codeSet("A40", "A41", "A42", "A43", "A44", "A45", "A46", "A48", "A49", "A410"),
	"savings_account":    codeSet("A61", "A62", "A63", "A64", "A65"),
	"employment":         codeSet("A71", "A72", "A73", "A74", "A75"),
	"status_sex":         codeSet("A91", "A92", "A93", "A94", "A95"),
	"guarantors":         codeSet("A101", "A102", "A103"),
	"property":           codeSet("A121", "A122", "A123", "A124"),
	"other_installments": codeSet("A141", "A142", "A143"),
	"housing":            codeSet("A151", "A152", "A153"),
	"job":                codeSet("A171", "A172", "A173", "A174"),
	"telephone":          codeSet("A191", "A192"),
	"foreign_worker":     codeSet("A201", "A202"),
}

func codeSet(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

// ApplicantRecord is a fully-specified applicant as the model consumes it.
// CreditAmount is in model units (face amount divided by the model scale
// factor), not the face value of the loan.
type ApplicantRecord struct {
	CheckingAccount   CheckingStatus
	CreditHistory     CreditHistory
	Purpose           Purpose
	SavingsAccount    Savings
	Employment        Employment
	StatusSex         PersonalStatus
	Guarantors        Guarantor
	Property          Property
	OtherInstallments OtherInstallments
	Housing           Housing
	Job               Job
	Telephone         Telephone
	ForeignWorker     ForeignWorker
	CreditAmount      float64
	Duration          int
	InstallmentRate   int
	ResidenceSince    int
	Age               int
	ExistingCredits   int
	PeopleLiable      int
}

// DefaultApplicantRecord returns a record pre-filled with the attributes the
// intake form does not collect. Callers overwrite the collected fields.
func DefaultApplicantRecord() ApplicantRecord {
	return ApplicantRecord{
		StatusSex:         StatusMaleSingle,
		Guarantors:        GuarantorNone,
		ResidenceSince:    4,
		OtherInstallments: InstallmentsNone,
		ExistingCredits:   1,
		PeopleLiable:      1,
		Telephone:         TelephoneRegistered,
		ForeignWorker:     ForeignWorkerYes,
	}
}

// Validate checks that every categorical attribute carries a declared code
// and that the numeric attributes are in plausible ranges. A record that
// fails validation must not be scored.
func (r *ApplicantRecord) Validate() error {
	categoricals := []struct {
		attr  string
		value string
	}{
		{"checking_account", string(r.CheckingAccount)},
		{"credit_history", string(r.CreditHistory)},
		{"purpose", string(r.Purpose)},
		{"savings_account", string(r.SavingsAccount)},
		{"employment", string(r.Employment)},
		{"status_sex", string(r.StatusSex)},
		{"guarantors", string(r.Guarantors)},
		{"property", string(r.Property)},
		{"other_installments", string(r.OtherInstallments)},
		{"housing", string(r.Housing)},
		{"job", string(r.Job)},
		{"telephone", string(r.Telephone)},
		{"foreign_worker", string(r.ForeignWorker)},
	}

	for _, c := range categoricals {
		if c.value == "" {
			return fmt.Errorf("missing required attribute %q", c.attr)
		}
		if !validCodes[c.attr][c.value] {
			return fmt.Errorf("invalid code %q for attribute %q", c.value, c.attr)
		}
	}

	switch {
	case r.Age < 18 || r.Age > 90:
		return fmt.Errorf("age %d outside supported range [18,90]", r.Age)
	case r.Duration < 1:
		return fmt.Errorf("duration must be at least 1 month, got %d", r.Duration)
	case r.CreditAmount <= 0:
		return fmt.Errorf("credit amount must be positive, got %.2f", r.CreditAmount)
	case r.InstallmentRate < 1 || r.InstallmentRate > 4:
		return fmt.Errorf("installment rate %d outside tiers [1,4]", r.InstallmentRate)
	}

	return nil
}

// Clone returns an independent copy safe to perturb without touching the
// original record.
func (r *ApplicantRecord) Clone() *ApplicantRecord {
	clone := *r
	return &clone
}
