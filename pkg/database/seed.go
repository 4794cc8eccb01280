package database

import (
	"database/sql"
	"fmt"
	"time"

	"telechat/internal/domain/chat"
	"telechat/internal/domain/message"
	"telechat/internal/domain/user"

	"github.com/google/uuid"
)

// RunFullMigration applies the raw SQL migrations and then the GORM schema.
func RunFullMigration(migrationsDir string) error {
	if err := ApplyRawMigrations(migrationsDir); err != nil {
		return err
	}
	return DB.AutoMigrate(
		&user.User{},
		&chat.Chat{},
		&chat.ChatMember{},
		&message.Message{},
	)
}

// SeedResult summarizes what SeedDevelopment created.
type SeedResult struct {
	Users    []*user.User
	Chats    []*chat.Chat
	Messages []*message.Message
}

// SeedDevelopment populates the database with a handful of test users, a
// private chat and a group chat with a short message history. Idempotent on
// users (keyed by phone); chats and messages are created on every run.
func SeedDevelopment() (*SeedResult, error) {
	result := &SeedResult{}

	seedUsers := []struct {
		phone    string
		username string
	}{
		{"+79990000001", "alice"},
		{"+79990000002", "bob"},
		{"+79990000003", "carol"},
		{"+79990000004", "dave"},
	}

	for _, su := range seedUsers {
		u := &user.User{
			ID:       uuid.New(),
			Phone:    su.phone,
			Username: su.username,
		}
		if err := DB.Where(user.User{Phone: su.phone}).FirstOrCreate(u).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", su.phone, err)
		}
		result.Users = append(result.Users, u)
	}

	private := &chat.Chat{
		ID:   uuid.New(),
		Type: chat.TypePrivate,
	}
	if err := DB.Create(private).Error; err != nil {
		return nil, fmt.Errorf("failed to seed private chat: %w", err)
	}
	result.Chats = append(result.Chats, private)

	group := &chat.Chat{
		ID:    uuid.New(),
		Type:  chat.TypeGroup,
		Title: sql.NullString{String: "Общий чат", Valid: true},
	}
	if err := DB.Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to seed group chat: %w", err)
	}
	result.Chats = append(result.Chats, group)

	memberships := []chat.ChatMember{
		{ChatID: private.ID, UserID: result.Users[0].ID, Role: chat.RoleOwner},
		{ChatID: private.ID, UserID: result.Users[1].ID, Role: chat.RoleMember},
		{ChatID: group.ID, UserID: result.Users[0].ID, Role: chat.RoleOwner},
		{ChatID: group.ID, UserID: result.Users[1].ID, Role: chat.RoleMember},
		{ChatID: group.ID, UserID: result.Users[2].ID, Role: chat.RoleMember},
	}
	for i := range memberships {
		if err := DB.Create(&memberships[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to seed chat member: %w", err)
		}
	}

	texts := []struct {
		chatID uuid.UUID
		userID uuid.UUID
		text   string
	}{
		{private.ID, result.Users[0].ID, "Привет!"},
		{private.ID, result.Users[1].ID, "Привет, как дела?"},
		{group.ID, result.Users[0].ID, "Добро пожаловать в общий чат"},
		{group.ID, result.Users[2].ID, "Спасибо!"},
	}
	base := time.Now().Add(-time.Hour)
	for i, t := range texts {
		m := &message.Message{
			ID:        uuid.New(),
			ChatID:    t.chatID,
			UserID:    t.userID,
			Text:      t.text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := DB.Create(m).Error; err != nil {
			return nil, fmt.Errorf("failed to seed message: %w", err)
		}
		result.Messages = append(result.Messages, m)
	}

	return result, nil
}
