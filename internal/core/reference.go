package core

import (
	"context"
	"crypto/rand"
)

const (
	referencePrefix    = "TFG"
	referenceAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceSuffixLen = 6
)

// newReferenceNumber produces an unused reference of the form
// TFG-YYYYMMDD-XXXXXX. The existence probe keeps collisions rare; the
// unique constraint on guarantees is what actually guarantees
// uniqueness, and callers retry the insert on ErrDuplicateReference.
func (s *Service) newReferenceNumber(ctx context.Context, store Store) (string, error) {
	for {
		ref := referencePrefix + "-" + timeNow().Format("20060102") + "-" + randomSuffix()
		exists, err := store.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
}

// randomSuffix draws six characters from the reference alphabet.
func randomSuffix() string {
	buf := make([]byte, referenceSuffixLen)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(buf)
}
