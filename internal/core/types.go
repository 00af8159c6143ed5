package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role identifies what an actor is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the resolved principal performing an operation. Identity
// resolution happens at the transport layer; core code only ever sees
// an actor that exists.
type Actor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// GuaranteeStatus tracks a guarantee through its workflow.
type GuaranteeStatus string

const (
	StatusDraft    GuaranteeStatus = "draft"
	StatusReview   GuaranteeStatus = "review"
	StatusApplied  GuaranteeStatus = "applied"
	StatusIssued   GuaranteeStatus = "issued"
	StatusRejected GuaranteeStatus = "rejected"
)

// GuaranteeType enumerates the accepted guarantee products.
type GuaranteeType string

const (
	TypeBank      GuaranteeType = "Bank"
	TypeBidBond   GuaranteeType = "Bid Bond"
	TypeInsurance GuaranteeType = "Insurance"
	TypeSurety    GuaranteeType = "Surety"
)

// GuaranteeTypes lists the valid types in display order.
var GuaranteeTypes = []GuaranteeType{TypeBank, TypeBidBond, TypeInsurance, TypeSurety}

// ValidGuaranteeType reports whether s names an accepted guarantee
// type. The comparison is exact: values are case sensitive.
func ValidGuaranteeType(s string) bool {
	for _, t := range GuaranteeTypes {
		if s == string(t) {
			return true
		}
	}
	return false
}

// Guarantee is the central domain entity.
type Guarantee struct {
	ID                       uuid.UUID       `json:"id"`
	CorporateReferenceNumber string          `json:"corporate_reference_number"`
	GuaranteeType            GuaranteeType   `json:"guarantee_type"`
	NominalAmount            decimal.Decimal `json:"nominal_amount"`
	NominalAmountCurrency    string          `json:"nominal_amount_currency"`
	ExpiryDate               time.Time       `json:"expiry_date"`
	ApplicantName            string          `json:"applicant_name"`
	ApplicantAddress         string          `json:"applicant_address"`
	BeneficiaryName          string          `json:"beneficiary_name"`
	BeneficiaryAddress       string          `json:"beneficiary_address"`
	Status                   GuaranteeStatus `json:"status"`
	OwnerID                  uuid.UUID       `json:"owner_id"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// Editable reports whether the guarantee may still be modified.
// Only drafts are editable.
func (g *Guarantee) Editable() bool {
	return g.Status == StatusDraft
}

// Deletable reports whether the guarantee may be removed. Drafts and
// rejected guarantees qualify; everything in flight or issued stays.
func (g *Guarantee) Deletable() bool {
	return g.Status == StatusDraft || g.Status == StatusRejected
}

// Rejectable reports whether an admin may reject the guarantee.
func (g *Guarantee) Rejectable() bool {
	return g.Status == StatusReview || g.Status == StatusApplied
}

// Review accompanies a guarantee from the moment it is submitted.
// Notes and reviewer are filled in when an admin acts on it.
type Review struct {
	ID          uuid.UUID  `json:"id"`
	GuaranteeID uuid.UUID  `json:"guarantee_id"`
	ReviewNotes *string    `json:"review_notes"`
	ReviewerID  *uuid.UUID `json:"reviewer_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FileStatus tracks an uploaded file. The lifecycle is one-way:
// uploaded files end up processed or failed and never move again.
type FileStatus string

const (
	FileUploaded  FileStatus = "uploaded"
	FileProcessed FileStatus = "processed"
	FileFailed    FileStatus = "failed"
)

// File is an uploaded payload awaiting or past processing. Contents
// are kept verbatim so a batch can be inspected after the fact.
type File struct {
	ID              uuid.UUID  `json:"id"`
	Filename        string     `json:"filename"`
	FileType        string     `json:"file_type"`
	FileContents    []byte     `json:"-"`
	Status          FileStatus `json:"status"`
	ProcessingNotes string     `json:"processing_notes,omitempty"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// GuaranteeInput carries the nine canonical guarantee fields as raw
// strings, exactly as they arrived from an upload row or an API
// payload. Validation and type conversion happen in the service.
type GuaranteeInput struct {
	CorporateReferenceNumber string `json:"corporate_reference_number"`
	GuaranteeType            string `json:"guarantee_type"`
	NominalAmount            string `json:"nominal_amount"`
	NominalAmountCurrency    string `json:"nominal_amount_currency"`
	ExpiryDate               string `json:"expiry_date"`
	ApplicantName            string `json:"applicant_name"`
	ApplicantAddress         string `json:"applicant_address"`
	BeneficiaryName          string `json:"beneficiary_name"`
	BeneficiaryAddress       string `json:"beneficiary_address"`
}

// FieldErrors collects validation messages keyed by canonical field
// name. A field can accumulate several messages; all rules are always
// evaluated so callers see the complete picture at once.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// BatchResult summarizes one ingestion run over a file.
type BatchResult struct {
	SuccessCount int        `json:"success_count"`
	FailedCount  int        `json:"failed_count"`
	Errors       []RowError `json:"errors,omitempty"`
}

// RowError records why one mapped record was not persisted. Row is the
// 1-based position of the record among the mapped records of its file;
// records dropped during alias mapping are not counted.
type RowError struct {
	Row    int         `json:"row"`
	Fields FieldErrors `json:"errors"`
	Data   Record      `json:"data"`
}
