package core

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// timeNow is swapped out by tests that pin the clock.
var timeNow = time.Now

// expiryDateLayouts are the date formats accepted for expiry_date.
var expiryDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate tries each accepted layout in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range expiryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// today returns the current date with the time part dropped, in UTC so
// it compares cleanly against zone-less parsed dates.
func today() time.Time {
	now := timeNow()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// validateInput applies the stateless field rules and collects every
// violation; no rule short-circuits another field. Store-backed checks
// (reference uniqueness, owner existence) live on the service.
// requireReference is false for API-created guarantees, whose reference
// is generated rather than supplied.
func validateInput(in GuaranteeInput, requireReference bool) FieldErrors {
	fe := FieldErrors{}

	if requireReference && strings.TrimSpace(in.CorporateReferenceNumber) == "" {
		fe.add("corporate_reference_number", "is required")
	}

	switch typ := strings.TrimSpace(in.GuaranteeType); {
	case typ == "":
		fe.add("guarantee_type", "is required")
	case !ValidGuaranteeType(typ):
		fe.add("guarantee_type", "must be one of Bank, Bid Bond, Insurance, Surety")
	}

	switch amt := strings.TrimSpace(in.NominalAmount); {
	case amt == "":
		fe.add("nominal_amount", "is required")
	default:
		d, err := decimal.NewFromString(amt)
		switch {
		case err != nil:
			fe.add("nominal_amount", "must be a number")
		case d.IsNegative():
			fe.add("nominal_amount", "must be at least 0")
		}
	}

	switch cur := strings.TrimSpace(in.NominalAmountCurrency); {
	case cur == "":
		fe.add("nominal_amount_currency", "is required")
	case utf8.RuneCountInString(cur) != 3:
		fe.add("nominal_amount_currency", "must be exactly 3 characters")
	}

	switch exp := strings.TrimSpace(in.ExpiryDate); {
	case exp == "":
		fe.add("expiry_date", "is required")
	default:
		d, ok := parseDate(exp)
		switch {
		case !ok:
			fe.add("expiry_date", "is not a valid date")
		case d.Before(today()):
			fe.add("expiry_date", "must be a date on or after today")
		}
	}

	for _, f := range []struct{ name, value string }{
		{"applicant_name", in.ApplicantName},
		{"applicant_address", in.ApplicantAddress},
		{"beneficiary_name", in.BeneficiaryName},
		{"beneficiary_address", in.BeneficiaryAddress},
	} {
		if strings.TrimSpace(f.value) == "" {
			fe.add(f.name, "is required")
		}
	}

	return fe
}

// buildGuarantee converts input that already passed validation into a
// draft guarantee owned by ownerID.
func buildGuarantee(in GuaranteeInput, ownerID uuid.UUID) *Guarantee {
	amount, _ := decimal.NewFromString(strings.TrimSpace(in.NominalAmount))
	expiry, _ := parseDate(in.ExpiryDate)
	return &Guarantee{
		ID:                       uuid.New(),
		CorporateReferenceNumber: strings.TrimSpace(in.CorporateReferenceNumber),
		GuaranteeType:            GuaranteeType(strings.TrimSpace(in.GuaranteeType)),
		NominalAmount:            amount.Round(2),
		NominalAmountCurrency:    strings.TrimSpace(in.NominalAmountCurrency),
		ExpiryDate:               expiry,
		ApplicantName:            strings.TrimSpace(in.ApplicantName),
		ApplicantAddress:         strings.TrimSpace(in.ApplicantAddress),
		BeneficiaryName:          strings.TrimSpace(in.BeneficiaryName),
		BeneficiaryAddress:       strings.TrimSpace(in.BeneficiaryAddress),
		Status:                   StatusDraft,
		OwnerID:                  ownerID,
	}
}
