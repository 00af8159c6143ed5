package core

// canonicalFields are the nine fields every guarantee record must
// carry after alias resolution.
var canonicalFields = []string{
	"corporate_reference_number",
	"guarantee_type",
	"nominal_amount",
	"nominal_amount_currency",
	"expiry_date",
	"applicant_name",
	"applicant_address",
	"beneficiary_name",
	"beneficiary_address",
}

// fieldAliases maps accepted source keys to canonical fields, in
// resolution order. The first alias present in a record wins; later
// aliases for an already-resolved field are ignored, so a row carrying
// both "corporate_reference_number" and "reference" keeps the former.
var fieldAliases = []struct {
	source string
	target string
}{
	{"corporate_reference_number", "corporate_reference_number"},
	{"reference_number", "corporate_reference_number"},
	{"ref_number", "corporate_reference_number"},
	{"reference", "corporate_reference_number"},

	{"guarantee_type", "guarantee_type"},
	{"type", "guarantee_type"},

	{"nominal_amount", "nominal_amount"},
	{"amount", "nominal_amount"},

	{"nominal_amount_currency", "nominal_amount_currency"},
	{"currency", "nominal_amount_currency"},

	{"expiry_date", "expiry_date"},
	{"expiry", "expiry_date"},

	{"applicant_name", "applicant_name"},
	{"applicant", "applicant_name"},

	{"applicant_address", "applicant_address"},

	{"beneficiary_name", "beneficiary_name"},
	{"beneficiary", "beneficiary_name"},

	{"beneficiary_address", "beneficiary_address"},
}

// MapFields resolves a raw record to the canonical guarantee fields.
// Unknown keys are discarded. The second result is false when any
// canonical field is missing; such records are dropped by the
// ingestion pipeline and do not appear in its accounting.
func MapFields(rec Record) (Record, bool) {
	mapped := make(Record, len(canonicalFields))
	for _, a := range fieldAliases {
		v, ok := rec[a.source]
		if !ok {
			continue
		}
		if _, done := mapped[a.target]; done {
			continue
		}
		mapped[a.target] = v
	}
	for _, f := range canonicalFields {
		if _, ok := mapped[f]; !ok {
			return nil, false
		}
	}
	return mapped, true
}

// InputFromRecord lifts a mapped record into a GuaranteeInput.
func InputFromRecord(rec Record) GuaranteeInput {
	return GuaranteeInput{
		CorporateReferenceNumber: rec["corporate_reference_number"],
		GuaranteeType:            rec["guarantee_type"],
		NominalAmount:            rec["nominal_amount"],
		NominalAmountCurrency:    rec["nominal_amount_currency"],
		ExpiryDate:               rec["expiry_date"],
		ApplicantName:            rec["applicant_name"],
		ApplicantAddress:         rec["applicant_address"],
		BeneficiaryName:          rec["beneficiary_name"],
		BeneficiaryAddress:       rec["beneficiary_address"],
	}
}
