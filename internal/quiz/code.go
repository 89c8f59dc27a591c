package quiz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// codeLength is the length of a quiz code.
const codeLength = 8

// maxCodeAttempts bounds collision regeneration. With 8 hex characters
// of randomness a collision is already vanishingly unlikely.
const maxCodeAttempts = 10

// newCode issues a fresh 8-character code that does not collide with any
// code already in the store.
func newCode(ctx context.Context, s Store) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := uuid.New().String()[:codeLength]

		exists, err := s.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code collision: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not issue a unique code after %d attempts", maxCodeAttempts)
}
