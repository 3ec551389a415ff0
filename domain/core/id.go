package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// DatasetID identifies one uploaded sheet held by the viewer.
type DatasetID ID

// NewDatasetID creates a fresh dataset identifier.
func NewDatasetID() DatasetID { return DatasetID(NewID()) }

func (id DatasetID) IsEmpty() bool { return ID(id).IsEmpty() }
