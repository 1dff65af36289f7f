package vectors

import "github.com/google/uuid"

// Batch groups records captured for one profile under a stable
// identifier, so a run of lora-vectors can be referenced later without
// relying on filesystem ordering.
type Batch struct {
	ID      uuid.UUID
	Profile Profile
	Records []Record
}

// NewBatch tags records with a fresh random identifier for profile.
func NewBatch(p Profile, records []Record) Batch {
	return Batch{ID: uuid.New(), Profile: p, Records: records}
}
