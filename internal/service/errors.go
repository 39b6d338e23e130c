package service

import (
	stderrors "errors"

	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// persistErr converts a failed write into the error callers see. Domain errors
// raised inside a mutation pass through; a version conflict that survived the
// retries becomes ErrConflict; anything else means the change was not saved.
func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if stderrors.Is(err, storage.ErrVersionConflict) {
		return &errors.ErrConflict{Message: "the data was changed by someone else, please retry"}
	}
	return &errors.ErrUnsaved{Op: op, Err: err}
}

func isDomainError(err error) bool {
	var (
		notFound     *errors.ErrNotFound
		validation   *errors.ErrValidation
		conflict     *errors.ErrConflict
		transition   *errors.ErrInvalidStateTransition
		forbidden    *errors.ErrForbidden
		unauthorized *errors.ErrUnauthorized
		unsaved      *errors.ErrUnsaved
	)
	return stderrors.As(err, &notFound) ||
		stderrors.As(err, &validation) ||
		stderrors.As(err, &conflict) ||
		stderrors.As(err, &transition) ||
		stderrors.As(err, &forbidden) ||
		stderrors.As(err, &unauthorized) ||
		stderrors.As(err, &unsaved)
}
