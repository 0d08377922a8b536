package models

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the contact pipeline state of a captured lead.
type LeadStatus string

const (
	StatusNew       LeadStatus = "NEW"
	StatusContacted LeadStatus = "CONTACTED"
	StatusClosed    LeadStatus = "CLOSED"
)

// MaxMessageLength bounds the public form's message field.
const MaxMessageLength = 2000

var statusLabels = map[LeadStatus]string{
	StatusNew:       "New",
	StatusContacted: "Contacted",
	StatusClosed:    "Closed",
}

// StatusChoices lists the valid status codes in pipeline order.
func StatusChoices() []LeadStatus {
	return []LeadStatus{StatusNew, StatusContacted, StatusClosed}
}

// ValidStatus reports whether code is one of the three status codes.
func ValidStatus(code LeadStatus) bool {
	_, ok := statusLabels[code]
	return ok
}

// Label returns the human-readable form used in the dashboard and CSV
// export ("New", "Contacted", "Closed").
func (s LeadStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Lead is a single capture submission belonging to one owner.
type Lead struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	Phone     string     `gorm:"size:50" json:"phone"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Status    LeadStatus `gorm:"size:20;not null;default:'NEW';index" json:"status"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Owner     User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
