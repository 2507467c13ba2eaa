package domain

import "time"

// LeadStatus represents the pipeline stage of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

// Lead is a prospective buyer tracked in the CRM. The console treats leads
// as immutable snapshots fetched from the API; there is no local
// authoritative copy.
type Lead struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone"`
	Source         string     `json:"source"`
	Status         LeadStatus `json:"status"`
	Budget         float64    `json:"budget,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	AssignedTo     string     `json:"assignedTo,omitempty"`
	AssignedToName string     `json:"assignedToName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ActivityType classifies an interaction logged against a lead.
type ActivityType string

const (
	ActivityCall         ActivityType = "call"
	ActivityEmail        ActivityType = "email"
	ActivityMeeting      ActivityType = "meeting"
	ActivityNote         ActivityType = "note"
	ActivityStatusChange ActivityType = "status_change"
)

// Activity is a single interaction on a lead's timeline.
type Activity struct {
	ID            string       `json:"id"`
	LeadID        string       `json:"leadId"`
	Type          ActivityType `json:"type"`
	Description   string       `json:"description"`
	CreatedBy     string       `json:"createdBy"`
	CreatedByName string       `json:"createdByName"`
	CreatedAt     time.Time    `json:"createdAt"`
	ScheduledAt   *time.Time   `json:"scheduledAt,omitempty"`
}

// ImportJobStatus represents the lifecycle state of a bulk lead import.
type ImportJobStatus string

const (
	ImportPending    ImportJobStatus = "pending"
	ImportProcessing ImportJobStatus = "processing"
	ImportCompleted  ImportJobStatus = "completed"
	ImportFailed     ImportJobStatus = "failed"
)

// Terminal reports whether the job will see no further progress.
func (s ImportJobStatus) Terminal() bool {
	return s == ImportCompleted || s == ImportFailed
}

// ImportJob tracks a server-side bulk lead import started from the console.
type ImportJob struct {
	ID            string          `json:"id"`
	FileName      string          `json:"fileName,omitempty"`
	Status        ImportJobStatus `json:"status"`
	TotalRows     int             `json:"totalRows"`
	ProcessedRows int             `json:"processedRows"`
	FailedRows    int             `json:"failedRows"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
