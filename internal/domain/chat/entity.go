package chat

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Chat types
const (
	TypePrivate = "private"
	TypeGroup   = "group"
)

// Member roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Chat represents the chats table. Type and title are immutable after
// creation; there is no edit operation.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type      string    `gorm:"not null"`
	Title     sql.NullString
	AvatarURL sql.NullString
	CreatedAt time.Time

	// Relationships
	Members []ChatMember `gorm:"foreignKey:ChatID"`
}

// ChatMember represents the chat_members table. Presence of a row is the
// sole authorization input for message operations on the chat.
type ChatMember struct {
	ChatID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"not null"`
	JoinedAt time.Time
}

func (Chat) TableName() string {
	return "chats"
}

func (ChatMember) TableName() string {
	return "chat_members"
}
