package domain

import "time"

// UnitType is the layout category of a unit.
type UnitType string

const (
	Unit1BHK  UnitType = "1BHK"
	Unit2BHK  UnitType = "2BHK"
	Unit3BHK  UnitType = "3BHK"
	Unit4BHK  UnitType = "4BHK"
	UnitVilla UnitType = "Villa"
	UnitPlot  UnitType = "Plot"
)

// UnitStatus represents the availability of a unit. Bookings move units
// between these states server-side, which is why booking mutations
// invalidate cached unit listings.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitBlocked   UnitStatus = "blocked"
	UnitBooked    UnitStatus = "booked"
	UnitSold      UnitStatus = "sold"
)

// Unit is a single sellable inventory item inside a project.
type Unit struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"projectId"`
	ProjectName string    `json:"projectName,omitempty"`
	UnitNumber string     `json:"unitNumber"`
	Type       UnitType   `json:"type"`
	Floor      int        `json:"floor,omitempty"`
	Area       float64    `json:"area"`
	BasePrice  float64    `json:"basePrice"`
	Status     UnitStatus `json:"status"`
	Amenities  []string   `json:"amenities,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
