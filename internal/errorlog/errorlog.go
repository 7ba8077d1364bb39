package errorlog

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a persisted processing error. Source distinguishes faults in
// our own plumbing from bad customer input.
type Entry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email"`
	Message   string    `json:"errorMessage"`
	OrderID   string    `json:"order_id,omitempty"`
	Source    string    `json:"type"`     // "System" or "Customer"
	Severity  string    `json:"severity"` // "Low", "Medium", "Critical"
	CreatedAt time.Time `json:"timestamp"`
}

const (
	SourceSystem   = "System"
	SourceCustomer = "Customer"
)

// Recorder writes error entries. Logging must never fail the caller, so
// Record has no error return.
type Recorder interface {
	Record(entry Entry)
}

type gormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder creates a database-backed error recorder
func NewGormRecorder(db *gorm.DB) Recorder {
	return &gormRecorder{db: db}
}

func (r *gormRecorder) Record(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Severity == "" {
		// Duplicates and other soft failures are routine
		if strings.Contains(strings.ToLower(entry.Message), "duplicate") {
			entry.Severity = "Medium"
		} else {
			entry.Severity = "Critical"
		}
	}
	entry.CreatedAt = time.Now()
	if err := r.db.Create(&entry).Error; err != nil {
		log.Printf("[ErrorLog] Failed to persist error entry: %v", err)
	}
}

// Nop is a Recorder that discards entries. Used in tests.
type Nop struct{}

func (Nop) Record(Entry) {}
