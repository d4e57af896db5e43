package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is exchanged between a doctor and a patient who share at least one
// appointment. Replies reference the original message through ParentID.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	Subject string `gorm:"type:varchar(255)" json:"subject,omitempty"`
	Content string `gorm:"type:text;not null" json:"content"`

	IsRead bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// MarkRead flags the message as read at the given instant.
func (m *Message) MarkRead(now time.Time) {
	if !m.IsRead {
		m.IsRead = true
		m.ReadAt = &now
	}
}
