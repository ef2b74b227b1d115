package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for entities and queued operations.
// V7 UUIDs sort by creation time, which keeps locally created records in a
// stable order; on the (practically impossible) V7 failure it falls back to
// a random V4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// Short returns the last 8 characters of a generated identifier, taken
// from the random section of the UUID. It is used as the uniqueness suffix
// of queue operation IDs, where the full coordinates already carry kind,
// entity and timestamp. The leading characters of a V7 UUID encode that
// same timestamp and stay constant for hours, so they make no suffix.
func (g *UUIDGenerator) Short() string {
	id := g.Generate()
	return id[len(id)-8:]
}
