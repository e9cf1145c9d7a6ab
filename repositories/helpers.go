package repositories

import (
	"errors"
	"fmt"

	"github.com/Dosada05/sports-management/db"
)

// translateStoreError maps store sentinels onto the entity errors of a
// repository and wraps everything else with the failed operation.
func translateStoreError(err error, op string, notFoundError, conflictError error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNoDocuments):
		return notFoundError
	case errors.Is(err, db.ErrDuplicateKey):
		return conflictError
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
