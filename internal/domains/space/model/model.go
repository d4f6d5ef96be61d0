package model

import (
	"time"

	"cowork/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "spaces"
	EntityName = "space"

	TableAvailableDate  = "available_dates"
	EntityAvailableDate = "available_date"

	FieldID           = "id"
	FieldRoomNumber   = "room_number"
	FieldCabinNumber  = "cabin_number"
	FieldSpaceName    = "space_name"
	FieldSeater       = "seater"
	FieldPrice        = "price"
	FieldGST          = "gst"
	FieldFinalPrice   = "final_price"
	FieldAvailability = "availability"
	FieldImages       = "images"

	FieldSpaceID = "space_id"
	FieldDate    = "date"

	CacheGet    = "space:get"
	CacheGetAll = "space:gets"
	CacheCount  = "space:count"

	// GSTPercent is stored on every space for display.
	GSTPercent = 18
	MaxImages  = 5
)

type Availability string

const (
	AvailabilityAvailable     Availability = "Available"
	AvailabilityAvailableSoon Availability = "Available Soon"
	AvailabilityNotAvailable  Availability = "Not Available"
)

func (a Availability) Valid() bool {
	return a == AvailabilityAvailable || a == AvailabilityAvailableSoon || a == AvailabilityNotAvailable
}

// OrDefault replaces unknown values with Available.
func (a Availability) OrDefault() Availability {
	if a.Valid() {
		return a
	}

	return AvailabilityAvailable
}

type Space struct {
	ID           string         `db:"id"`
	RoomNumber   string         `db:"room_number"`
	CabinNumber  string         `db:"cabin_number"`
	SpaceName    string         `db:"space_name"`
	Seater       int            `db:"seater"`
	Price        float64        `db:"price"`
	GST          float64        `db:"gst"`
	FinalPrice   float64        `db:"final_price"`
	Availability Availability   `db:"availability"`
	Images       pq.StringArray `db:"images"`
	model.Metadata
}

type AvailableDate struct {
	ID      string    `db:"id"`
	SpaceID string    `db:"space_id"`
	Date    time.Time `db:"date"`
	model.Metadata
}
