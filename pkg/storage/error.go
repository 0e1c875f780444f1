package storage

// ErrNotFound is returned when a context doesn't exist in the store.
type ErrNotFound struct {
	ID string
}

func (e ErrNotFound) Error() string {
	if e.ID == "" {
		return "context not found"
	}

	return "context not found: " + e.ID
}
