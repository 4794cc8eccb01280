package message

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table. Immutable except the edited flag.
// ReplyTo is stored as given; it is not cross-checked against the chat.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"not null"`
	ReplyTo   uuid.NullUUID
	CreatedAt time.Time
	Edited    bool
}

func (Message) TableName() string {
	return "messages"
}
