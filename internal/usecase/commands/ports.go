package commands

import (
	"ticketing-engine/internal/pkg/errs"
)

// notFoundAs maps a repository miss onto the domain kind the caller reports.
// Other storage failures pass through untouched.
func notFoundAs(err error, kind *errs.Kind) error {
	if errs.Is(err, errs.ErrNotFound) {
		return errs.Mark(errs.Wrap(err, kind.Message()), kind)
	}
	return err
}
