package dto

import "time"

// Sheet is the wire and local-storage representation of a planner sheet.
type Sheet struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	FormattedDate string    `json:"formattedDate,omitempty"`
	Priorities    []string  `json:"priorities"`
	Hours         []Slot    `json:"hours"`
	Window        *Window   `json:"window,omitempty"`
	BrainDump     string    `json:"brainDump"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

type Slot struct {
	Task  string `json:"task"`
	Notes string `json:"notes"`
}

type Window struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// CreateSheetInput is the POST /api/sheets body. Date may be a day key or an
// RFC 3339 timestamp.
type CreateSheetInput struct {
	Date       string   `json:"date"`
	Priorities []string `json:"priorities"`
	Hours      []Slot   `json:"hours"`
	Window     *Window  `json:"window,omitempty"`
	BrainDump  string   `json:"brainDump"`
}

// UpdateSheetInput is the PUT /api/sheets/:id body; only mutable fields.
type UpdateSheetInput struct {
	Priorities []string `json:"priorities"`
	Hours      []Slot   `json:"hours"`
	Window     *Window  `json:"window,omitempty"`
	BrainDump  string   `json:"brainDump"`
}

type CreateOutput struct {
	Sheet Sheet
	// Existed is set when a sheet for the day was already there.
	Existed bool
}

type ExportInput struct {
	Date string
	Dir  string
}

type ExportOutput struct {
	Path string
}
