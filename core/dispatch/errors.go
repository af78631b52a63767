package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned by Create when the id is already in use.
	ErrDuplicateKey = errors.New("dispatch already exists")
	// ErrNotFound is returned by Update, Delete and AddResponseTime when
	// the id is unknown. Read reports absence without an error.
	ErrNotFound = errors.New("dispatch does not exist")
)

func duplicateKey(id ID) error { return fmt.Errorf("dispatch %d: %w", id, ErrDuplicateKey) }

func notFound(id ID) error { return fmt.Errorf("dispatch %d: %w", id, ErrNotFound) }

// IsNotFound reports whether err signals an unknown dispatch id.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicateKey reports whether err signals an id collision.
func IsDuplicateKey(err error) bool { return errors.Is(err, ErrDuplicateKey) }
