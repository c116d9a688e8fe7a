package types

import (
	"github.com/google/uuid"
)

// Typed string IDs prevent accidental cross-entity assignment while keeping
// plain JSON string serialization. All IDs are UUIDv7; time-ordering keeps
// sequential inserts clustered in B-tree pages.

type (
	BaristaID    string
	RoasterID    string
	BeanID       string
	MachineID    string
	GrinderID    string
	BagID        string
	BrewID       string
	SuggestionID string
)

// NewID generates a UUIDv7 string.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func NewBaristaID() BaristaID       { return BaristaID(NewID()) }
func NewRoasterID() RoasterID       { return RoasterID(NewID()) }
func NewBeanID() BeanID             { return BeanID(NewID()) }
func NewMachineID() MachineID       { return MachineID(NewID()) }
func NewGrinderID() GrinderID       { return GrinderID(NewID()) }
func NewBagID() BagID               { return BagID(NewID()) }
func NewBrewID() BrewID             { return BrewID(NewID()) }
func NewSuggestionID() SuggestionID { return SuggestionID(NewID()) }

// ParseID validates that s is a well-formed UUID and returns it unchanged.
// Rejects malformed IDs at the API boundary before they reach the store.
func ParseID(s string) (string, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return s, nil
}
