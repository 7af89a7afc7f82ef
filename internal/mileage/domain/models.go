package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Mileage values are odometer readings in whole units (km or miles,
// whichever the shop uses).
const (
	MinMileage = 0
	MaxMileage = 2_000_000
)

// Source tags identify which trigger appended an entry.
const (
	SourceManual  = "manual"
	SourceTyping  = "typing"
	SourceInvoice = "invoice"
	SourceImport  = "import"
)

// MileageEntry is one row of the append-only ledger. Entries are never
// rewritten by the interactive paths; Update and Delete exist for rare
// operator corrections only.
type MileageEntry struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	VehicleID  snowflake.ID `gorm:"index:idx_mileage_vehicle_recorded;not null" json:"vehicle_id"`
	Mileage    int          `gorm:"not null;check:mileage >= 0 AND mileage <= 2000000" json:"mileage"`
	RecordedAt time.Time    `gorm:"index:idx_mileage_vehicle_recorded;not null" json:"recorded_at"`
	Source     string       `gorm:"size:20;not null" json:"source"`
	Notes      string       `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (MileageEntry) TableName() string {
	return "mileage_entries"
}

// EditStatus classifies the outcome of an interactive mileage change.
type EditStatus string

const (
	// EditAccepted means the proposed value was appended to the ledger.
	EditAccepted EditStatus = "accepted"
	// EditLocked means an entry inside the lock window already exists; the
	// caller should revert the displayed value and show Message.
	EditLocked EditStatus = "locked"
	// EditReverted means the proposed value regressed below the latest
	// entry; the caller should revert and show Message.
	EditReverted EditStatus = "reverted"
)

// EditOutcome is the result of the edit-lock policy. Locked and Reverted
// are expected policy results, not failures, so they travel on the value
// rather than the error return.
type EditOutcome struct {
	Status EditStatus `json:"status"`

	// EntryID is set when Status is EditAccepted.
	EntryID snowflake.ID `json:"entry_id,omitempty"`

	// RevertTo is the mileage the caller should display instead of the
	// proposed value. Set when Status is EditLocked or EditReverted.
	RevertTo *int `json:"revert_to,omitempty"`

	// Remaining is how long the lock window still holds. Set when Status
	// is EditLocked.
	Remaining time.Duration `json:"remaining,omitempty"`

	Message string `json:"message,omitempty"`
}
