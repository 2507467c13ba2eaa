package domain

import "time"

// ProjectStatus represents the construction stage of a project.
type ProjectStatus string

const (
	ProjectUpcoming  ProjectStatus = "upcoming"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
)

// Project is a real-estate development containing sellable units.
type Project struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Location       string        `json:"location"`
	Developer      string        `json:"developer"`
	Description    string        `json:"description,omitempty"`
	TotalUnits     int           `json:"totalUnits"`
	Status         ProjectStatus `json:"status"`
	PossessionDate string        `json:"possessionDate,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
