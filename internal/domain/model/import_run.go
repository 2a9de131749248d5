package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportState is a step of the bulk catalog import
type ImportState string

// Import states, in order
const (
	ImportStateAuthenticating ImportState = "AUTHENTICATING"
	ImportStateLinkRequested  ImportState = "LINK_REQUESTED"
	ImportStateDownloading    ImportState = "DOWNLOADING"
	ImportStateExpanding      ImportState = "EXPANDING"
	ImportStateDone           ImportState = "DONE"
	ImportStateFailed         ImportState = "FAILED"
)

// Terminal reports whether no further transition can happen
func (s ImportState) Terminal() bool {
	return s == ImportStateDone || s == ImportStateFailed
}

// ImportRun is the persisted trace of one catalog import
type ImportRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	State      ImportState    `gorm:"size:20;not null" json:"state"`
	Processed  int            `gorm:"not null;default:0" json:"processed"`
	Succeeded  int            `gorm:"not null;default:0" json:"succeeded"`
	Failed     int            `gorm:"not null;default:0" json:"failed"`
	Failures   datatypes.JSON `json:"failures,omitempty"`
	Error      string         `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ImportRun) TableName() string {
	return "import_runs"
}
