package models

import "time"

// EntityType identifies which domain collection a record or a queued
// operation belongs to.
type EntityType string

const (
	EntityWaste  EntityType = "waste"
	EntityUser   EntityType = "user"
	EntityRating EntityType = "rating"
)

// EntityTypes lists every known entity type. Code that dispatches by
// entity type should switch exhaustively over these values.
var EntityTypes = []EntityType{EntityWaste, EntityUser, EntityRating}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityWaste, EntityUser, EntityRating:
		return true
	}
	return false
}

// CollectionKey returns the local-store key under which the collection
// for this entity type is persisted.
func (t EntityType) CollectionKey() string {
	switch t {
	case EntityWaste:
		return KeyWastes
	case EntityUser:
		return KeyUsers
	case EntityRating:
		return KeyRatings
	}
	return ""
}

// WasteStatus is the lifecycle state of a waste listing.
type WasteStatus string

const (
	WastePublished WasteStatus = "published"
	WasteCollected WasteStatus = "collected"
	WasteArchived  WasteStatus = "archived"
)

// WasteType is the material category of a listing.
type WasteType string

const (
	WastePlastic    WasteType = "plastic"
	WasteGlass      WasteType = "glass"
	WasteMetal      WasteType = "metal"
	WastePaper      WasteType = "paper"
	WasteOrganic    WasteType = "organic"
	WasteElectronic WasteType = "electronic"
)

// Coordinates is a WGS84 point where a listing can be collected.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Waste is a single marketplace listing created by a waste producer.
type Waste struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Type        WasteType   `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description,omitempty"`
	Location    Coordinates `json:"location"`
	Status      WasteStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// User is a producer or recycler profile.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []string  `json:"addresses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating is feedback left by a recycler on a collected listing.
type Rating struct {
	ID        string    `json:"id"`
	WasteID   string    `json:"waste_id"`
	RaterID   string    `json:"rater_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
