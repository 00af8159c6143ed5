package core

import (
	"testing"

	"github.com/google/uuid"
)

func validInput() GuaranteeInput {
	return GuaranteeInput{
		CorporateReferenceNumber: "REF-1",
		GuaranteeType:            "Bank",
		NominalAmount:            "50000.00",
		NominalAmountCurrency:    "USD",
		ExpiryDate:               "2025-12-31",
		ApplicantName:            "Acme",
		ApplicantAddress:         "1 Road",
		BeneficiaryName:          "Globex",
		BeneficiaryAddress:       "2 Road",
	}
}

func TestValidateInput(t *testing.T) {
	pinClock(t, testToday)

	tests := []struct {
		name       string
		mutate     func(*GuaranteeInput)
		wantFields map[string]string // field -> expected message
	}{
		{
			name:   "valid input",
			mutate: func(in *GuaranteeInput) {},
		},
		{
			name:       "missing reference",
			mutate:     func(in *GuaranteeInput) { in.CorporateReferenceNumber = " " },
			wantFields: map[string]string{"corporate_reference_number": "is required"},
		},
		{
			name:       "unknown type",
			mutate:     func(in *GuaranteeInput) { in.GuaranteeType = "Performance" },
			wantFields: map[string]string{"guarantee_type": "must be one of Bank, Bid Bond, Insurance, Surety"},
		},
		{
			name:       "type is case sensitive",
			mutate:     func(in *GuaranteeInput) { in.GuaranteeType = "bank" },
			wantFields: map[string]string{"guarantee_type": "must be one of Bank, Bid Bond, Insurance, Surety"},
		},
		{
			name:       "amount not a number",
			mutate:     func(in *GuaranteeInput) { in.NominalAmount = "fifty" },
			wantFields: map[string]string{"nominal_amount": "must be a number"},
		},
		{
			name:       "negative amount",
			mutate:     func(in *GuaranteeInput) { in.NominalAmount = "-1" },
			wantFields: map[string]string{"nominal_amount": "must be at least 0"},
		},
		{
			name:   "zero amount is allowed",
			mutate: func(in *GuaranteeInput) { in.NominalAmount = "0" },
		},
		{
			name:       "currency too long",
			mutate:     func(in *GuaranteeInput) { in.NominalAmountCurrency = "USDT" },
			wantFields: map[string]string{"nominal_amount_currency": "must be exactly 3 characters"},
		},
		{
			name:       "currency too short",
			mutate:     func(in *GuaranteeInput) { in.NominalAmountCurrency = "US" },
			wantFields: map[string]string{"nominal_amount_currency": "must be exactly 3 characters"},
		},
		{
			name:       "unparseable date",
			mutate:     func(in *GuaranteeInput) { in.ExpiryDate = "eventually" },
			wantFields: map[string]string{"expiry_date": "is not a valid date"},
		},
		{
			name:       "past date",
			mutate:     func(in *GuaranteeInput) { in.ExpiryDate = "2020-01-01" },
			wantFields: map[string]string{"expiry_date": "must be a date on or after today"},
		},
		{
			name:   "today is inclusive",
			mutate: func(in *GuaranteeInput) { in.ExpiryDate = "2025-06-15" },
		},
		{
			name:   "slash layout accepted",
			mutate: func(in *GuaranteeInput) { in.ExpiryDate = "2030/01/02" },
		},
		{
			name:       "missing applicant name",
			mutate:     func(in *GuaranteeInput) { in.ApplicantName = "" },
			wantFields: map[string]string{"applicant_name": "is required"},
		},
		{
			name:       "missing beneficiary address",
			mutate:     func(in *GuaranteeInput) { in.BeneficiaryAddress = "  " },
			wantFields: map[string]string{"beneficiary_address": "is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			fe := validateInput(in, true)
			if len(tt.wantFields) == 0 {
				if len(fe) != 0 {
					t.Fatalf("validateInput() = %v, want no errors", fe)
				}
				return
			}
			if len(fe) != len(tt.wantFields) {
				t.Fatalf("validateInput() = %v, want errors on %v", fe, tt.wantFields)
			}
			for field, msg := range tt.wantFields {
				msgs := fe[field]
				if len(msgs) != 1 || msgs[0] != msg {
					t.Errorf("field %q: got %v, want [%q]", field, msgs, msg)
				}
			}
		})
	}
}

func TestValidateInputCollectsAllViolations(t *testing.T) {
	pinClock(t, testToday)

	fe := validateInput(GuaranteeInput{}, true)
	// Every canonical field is empty, so every one must be reported.
	for _, field := range canonicalFields {
		if len(fe[field]) == 0 {
			t.Errorf("field %q: no error reported, want one", field)
		}
	}
}

func TestValidateInputGeneratedReference(t *testing.T) {
	pinClock(t, testToday)

	in := validInput()
	in.CorporateReferenceNumber = ""
	if fe := validateInput(in, false); len(fe) != 0 {
		t.Errorf("validateInput() = %v, want no errors when reference is generated", fe)
	}
}

func TestBuildGuarantee(t *testing.T) {
	pinClock(t, testToday)

	in := validInput()
	in.NominalAmount = " 50000.005 "
	in.ApplicantName = "  Acme  "

	g := buildGuarantee(in, uuid.New())
	if g.Status != StatusDraft {
		t.Errorf("Status = %q, want %q", g.Status, StatusDraft)
	}
	if got := g.NominalAmount.String(); got != "50000.01" {
		t.Errorf("NominalAmount = %s, want 50000.01 (rounded to 2dp)", got)
	}
	if g.ApplicantName != "Acme" {
		t.Errorf("ApplicantName = %q, want trimmed value", g.ApplicantName)
	}
	if g.ExpiryDate.Format("2006-01-02") != "2025-12-31" {
		t.Errorf("ExpiryDate = %v", g.ExpiryDate)
	}
}
