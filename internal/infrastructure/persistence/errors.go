package persistence

import (
	"errors"

	"github.com/erp/reseller/internal/domain/shared"
	"gorm.io/gorm"
)

// translateNotFound maps GORM's record-not-found to the domain error
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a translated unique-constraint failure.
// The connection must be opened with TranslateError enabled.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
