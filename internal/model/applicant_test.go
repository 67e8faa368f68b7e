package model

import (
	"testing"
)

func validTestRecord() ApplicantRecord {
	rec := DefaultApplicantRecord()
	rec.CheckingAccount = CheckingNone
	rec.CreditHistory = CreditHistoryClean
	rec.Purpose = PurposeNewCar
	rec.SavingsAccount = SavingsUnknown
	rec.Employment = EmploymentOneToFour
	rec.Property = PropertyRealEstate
	rec.Housing = HousingOwner
	rec.Job = JobSkilled
	rec.CreditAmount = 1250
	rec.Duration = 24
	rec.InstallmentRate = 2
	rec.Age = 30
	return rec
}

func TestApplicantRecord_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*ApplicantRecord)
		name    string
		wantErr bool
	}{
		{
			name:    "valid record",
			mutate:  func(*ApplicantRecord) {},
			wantErr: false,
		},
		{
			name:    "missing credit history",
			mutate:  func(r *ApplicantRecord) { r.CreditHistory = "" },
			wantErr: true,
		},
		{
			name:    "unknown categorical code",
			mutate:  func(r *ApplicantRecord) { r.Housing = "A999" },
			wantErr: true,
		},
		{
			name:    "code from wrong attribute",
			mutate:  func(r *ApplicantRecord) { r.Job = Job(CreditHistoryExcellent) },
			wantErr: true,
		},
		{
			name:    "age below supported range",
			mutate:  func(r *ApplicantRecord) { r.Age = 17 },
			wantErr: true,
		},
		{
			name:    "zero duration",
			mutate:  func(r *ApplicantRecord) { r.Duration = 0 },
			wantErr: true,
		},
		{
			name:    "negative amount",
			mutate:  func(r *ApplicantRecord) { r.CreditAmount = -100 },
			wantErr: true,
		},
		{
			name:    "installment rate above max tier",
			mutate:  func(r *ApplicantRecord) { r.InstallmentRate = 5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validTestRecord()
			tt.mutate(&rec)

			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplicantRecord_Clone(t *testing.T) {
	rec := validTestRecord()
	clone := rec.Clone()

	clone.CreditHistory = CreditHistoryCritical
	clone.Age = 75

	if rec.CreditHistory != CreditHistoryClean {
		t.Errorf("mutating clone changed original credit history: %s", rec.CreditHistory)
	}
	if rec.Age != 30 {
		t.Errorf("mutating clone changed original age: %d", rec.Age)
	}
}

func TestMaskNationalID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "standard id", id: "12345678901", want: "123*****901"},
		{name: "too short to mask", id: "1234", want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskNationalID(tt.id); got != tt.want {
				t.Errorf("MaskNationalID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestHashNationalID_Stable(t *testing.T) {
	a := HashNationalID("12345678901")
	b := HashNationalID("12345678901")
	c := HashNationalID("10987654321")

	if a != b {
		t.Error("identical ids must hash identically")
	}
	if a == c {
		t.Error("distinct ids must not collide in tests")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256 digest, got length %d", len(a))
	}
}
