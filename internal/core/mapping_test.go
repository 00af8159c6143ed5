package core

import "testing"

func TestMapFields(t *testing.T) {
	complete := Record{
		"corporate_reference_number": "REF-1",
		"guarantee_type":             "Bank",
		"nominal_amount":             "1000",
		"nominal_amount_currency":    "USD",
		"expiry_date":                "2030-01-01",
		"applicant_name":             "Acme",
		"applicant_address":          "1 Road",
		"beneficiary_name":           "Globex",
		"beneficiary_address":        "2 Road",
	}

	tests := []struct {
		name   string
		input  Record
		want   Record
		wantOK bool
	}{
		{
			name:   "canonical keys pass through",
			input:  complete,
			want:   complete,
			wantOK: true,
		},
		{
			name: "aliases resolve",
			input: Record{
				"reference_number":    "REF-2",
				"type":                "Surety",
				"amount":              "500",
				"currency":            "EUR",
				"expiry":              "2030-01-01",
				"applicant":           "Acme",
				"applicant_address":   "1 Road",
				"beneficiary":         "Globex",
				"beneficiary_address": "2 Road",
			},
			want: Record{
				"corporate_reference_number": "REF-2",
				"guarantee_type":             "Surety",
				"nominal_amount":             "500",
				"nominal_amount_currency":    "EUR",
				"expiry_date":                "2030-01-01",
				"applicant_name":             "Acme",
				"applicant_address":          "1 Road",
				"beneficiary_name":           "Globex",
				"beneficiary_address":        "2 Road",
			},
			wantOK: true,
		},
		{
			name: "first alias wins",
			input: func() Record {
				r := clone(complete)
				r["reference"] = "LOSER"
				r["ref_number"] = "ALSO-LOSER"
				return r
			}(),
			want:   complete,
			wantOK: true,
		},
		{
			name: "missing canonical field drops the record",
			input: func() Record {
				r := clone(complete)
				delete(r, "beneficiary_address")
				return r
			}(),
			wantOK: false,
		},
		{
			name: "unknown keys are discarded",
			input: func() Record {
				r := clone(complete)
				r["comment"] = "ignore me"
				return r
			}(),
			want:   complete,
			wantOK: true,
		},
		{
			name: "empty values still count as present",
			input: func() Record {
				r := clone(complete)
				r["applicant_name"] = ""
				return r
			}(),
			want: func() Record {
				r := clone(complete)
				r["applicant_name"] = ""
				return r
			}(),
			wantOK: true,
		},
		{
			name:   "empty record",
			input:  Record{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapFields(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("MapFields() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d fields, want %d: %v", len(got), len(tt.want), got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("field %q: got %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestInputFromRecord(t *testing.T) {
	rec := Record{
		"corporate_reference_number": "REF-1",
		"guarantee_type":             "Bank",
		"nominal_amount":             "1000",
		"nominal_amount_currency":    "USD",
		"expiry_date":                "2030-01-01",
		"applicant_name":             "Acme",
		"applicant_address":          "1 Road",
		"beneficiary_name":           "Globex",
		"beneficiary_address":        "2 Road",
	}
	in := InputFromRecord(rec)
	if in.CorporateReferenceNumber != "REF-1" ||
		in.GuaranteeType != "Bank" ||
		in.NominalAmount != "1000" ||
		in.NominalAmountCurrency != "USD" ||
		in.ExpiryDate != "2030-01-01" ||
		in.ApplicantName != "Acme" ||
		in.ApplicantAddress != "1 Road" ||
		in.BeneficiaryName != "Globex" ||
		in.BeneficiaryAddress != "2 Road" {
		t.Errorf("InputFromRecord() = %+v", in)
	}
}

func clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
