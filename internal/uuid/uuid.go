// Package uuid generates the unique identifiers attached to order line items.
package uuid

import (
	"fmt"

	googleuuid "github.com/google/uuid"
)

// Generator returns a new unique identifier on every call.
type Generator func() string

// NewV4 returns a random (version 4) UUID string.
func NewV4() string {
	return googleuuid.NewString()
}

// NewV7 returns a time-ordered (version 7) UUID string.
// Falls back to a version 4 UUID if the random source fails.
func NewV7() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// ForVersion returns the generator for UUID version 4 or 7.
func ForVersion(version int) (Generator, error) {
	switch version {
	case 4:
		return NewV4, nil
	case 7:
		return NewV7, nil
	}
	return nil, fmt.Errorf("unsupported uuid version %d", version)
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
