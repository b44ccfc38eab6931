package repositories

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a media with the same (title, username) already exists.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when deleting a media or post still used by a publication.
	ErrReferenced = errors.New("record is referenced by a publication")
	// ErrMissingReference is returned when a publication points to a media or post that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// MissingReferenceError names the entity a publication pointed to.
type MissingReferenceError struct {
	Entity string
	ID     int
}

func (e *MissingReferenceError) Error() string {
	return e.Entity + " referenced by publication does not exist"
}

func (e *MissingReferenceError) Unwrap() error {
	return ErrMissingReference
}
