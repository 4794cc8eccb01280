package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Rows are created on first successful
// code verification and never deleted by this service.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone      string    `gorm:"uniqueIndex;not null"`
	Username   string    `gorm:"not null"`
	AvatarURL  sql.NullString
	CreatedAt  time.Time
	LastSeenAt sql.NullTime
}

func (User) TableName() string {
	return "users"
}
