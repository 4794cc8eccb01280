package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"telechat/internal/domain/chat"
	"telechat/internal/domain/message"
	"telechat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByPhone(ctx context.Context, phone string) (user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListUsers(ctx context.Context, excludeID uuid.UUID) ([]user.User, error)
	UpdateLastSeen(ctx context.Context, userID uuid.UUID, lastSeen time.Time) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
}

type ChatRepository interface {
	Create(ctx context.Context, c *chat.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	AddMember(ctx context.Context, m *chat.ChatMember) error
	IsMember(ctx context.Context, chatID, userID uuid.UUID) (bool, error)
	GetUserChats(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetChatMessages(ctx context.Context, chatID uuid.UUID) ([]message.Message, error)
	GetLatestMessage(ctx context.Context, chatID uuid.UUID) (message.Message, error)
	CountByChat(ctx context.Context, chatID uuid.UUID) (int64, error)
}
