package core

import (
	"context"
	"regexp"
	"testing"
)

var referencePattern = regexp.MustCompile(`^TFG-\d{8}-[A-Z0-9]{6}$`)

func TestNewReferenceNumberFormat(t *testing.T) {
	pinClock(t, testToday)
	svc, _, _, _ := newTestService()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := svc.newReferenceNumber(context.Background(), svc.store)
		if err != nil {
			t.Fatalf("newReferenceNumber() error = %v", err)
		}
		if !referencePattern.MatchString(ref) {
			t.Fatalf("reference %q does not match TFG-YYYYMMDD-XXXXXX", ref)
		}
		if ref[4:12] != "20250615" {
			t.Errorf("reference %q: date part = %q, want 20250615", ref, ref[4:12])
		}
		seen[ref] = true
	}
	if len(seen) < 2 {
		t.Error("suffixes never varied across 50 draws")
	}
}

func TestCreateGuaranteeRetriesOnConflict(t *testing.T) {
	pinClock(t, testToday)
	svc, store, user, _ := newTestService()

	// Force the first insert to collide at the constraint even though
	// the existence probe saw nothing.
	store.createGuaranteeErr = ErrDuplicateReference

	g, fe, err := svc.CreateGuarantee(context.Background(), user, inputWithoutReference())
	if err != nil {
		t.Fatalf("CreateGuarantee() error = %v", err)
	}
	if len(fe) != 0 {
		t.Fatalf("CreateGuarantee() field errors = %v", fe)
	}
	if !referencePattern.MatchString(g.CorporateReferenceNumber) {
		t.Errorf("reference %q does not match pattern", g.CorporateReferenceNumber)
	}
	if g.OwnerID != user.ID {
		t.Errorf("OwnerID = %v, want %v", g.OwnerID, user.ID)
	}
	if g.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", g.Status)
	}
}

func TestCreateGuaranteeIgnoresClientReference(t *testing.T) {
	pinClock(t, testToday)
	svc, _, user, _ := newTestService()

	in := inputWithoutReference()
	in.CorporateReferenceNumber = "CLIENT-CHOSEN"

	g, fe, err := svc.CreateGuarantee(context.Background(), user, in)
	if err != nil || len(fe) != 0 {
		t.Fatalf("CreateGuarantee() = %v, %v", fe, err)
	}
	if g.CorporateReferenceNumber == "CLIENT-CHOSEN" {
		t.Error("client-supplied reference was kept; it must be generated")
	}
	if !referencePattern.MatchString(g.CorporateReferenceNumber) {
		t.Errorf("reference %q does not match pattern", g.CorporateReferenceNumber)
	}
}

func TestCreateGuaranteeValidationFailure(t *testing.T) {
	pinClock(t, testToday)
	svc, store, user, _ := newTestService()

	in := inputWithoutReference()
	in.GuaranteeType = "Performance"
	in.NominalAmount = "-5"

	g, fe, err := svc.CreateGuarantee(context.Background(), user, in)
	if err != nil {
		t.Fatalf("CreateGuarantee() error = %v", err)
	}
	if g != nil {
		t.Fatal("guarantee returned despite validation failure")
	}
	if len(fe["guarantee_type"]) == 0 || len(fe["nominal_amount"]) == 0 {
		t.Errorf("field errors = %v, want guarantee_type and nominal_amount", fe)
	}
	if n := len(store.guarantees); n != 0 {
		t.Errorf("%d guarantees persisted, want 0", n)
	}
}

func inputWithoutReference() GuaranteeInput {
	in := validInput()
	in.CorporateReferenceNumber = ""
	return in
}
