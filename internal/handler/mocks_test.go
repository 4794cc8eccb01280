package handler

import (
	"context"
	"sort"
	"time"

	"telechat/internal/domain/chat"
	"telechat/internal/domain/message"
	"telechat/internal/domain/user"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
)

type memUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Phone == u.Phone {
			return telechat_errors.ErrAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, telechat_errors.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return user.User{}, telechat_errors.ErrNotFound
}

func (r *memUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *memUserRepo) ListUsers(ctx context.Context, excludeID uuid.UUID) ([]user.User, error) {
	result := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		if u.ID != excludeID {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *memUserRepo) UpdateLastSeen(ctx context.Context, userID uuid.UUID, lastSeen time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return telechat_errors.ErrNotFound
	}
	u.LastSeenAt.Time = lastSeen
	u.LastSeenAt.Valid = true
	r.users[userID] = u
	return nil
}

func (r *memUserRepo) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	u, ok := r.users[userID]
	if !ok {
		return telechat_errors.ErrNotFound
	}
	u.AvatarURL.String = avatarURL
	u.AvatarURL.Valid = true
	r.users[userID] = u
	return nil
}

type memChatRepo struct {
	chats   map[uuid.UUID]chat.Chat
	members map[uuid.UUID][]chat.ChatMember
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		chats:   make(map[uuid.UUID]chat.Chat),
		members: make(map[uuid.UUID][]chat.ChatMember),
	}
}

func (r *memChatRepo) Create(ctx context.Context, c *chat.Chat) error {
	r.chats[c.ID] = *c
	return nil
}

func (r *memChatRepo) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	c, ok := r.chats[id]
	if !ok {
		return chat.Chat{}, telechat_errors.ErrNotFound
	}
	return c, nil
}

func (r *memChatRepo) AddMember(ctx context.Context, m *chat.ChatMember) error {
	r.members[m.ChatID] = append(r.members[m.ChatID], *m)
	return nil
}

func (r *memChatRepo) IsMember(ctx context.Context, chatID, userID uuid.UUID) (bool, error) {
	for _, m := range r.members[chatID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memChatRepo) GetUserChats(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	var result []chat.Chat
	for chatID, members := range r.members {
		for _, m := range members {
			if m.UserID == userID {
				result = append(result, r.chats[chatID])
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type memMessageRepo struct {
	messages []message.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Create(ctx context.Context, m *message.Message) error {
	r.messages = append(r.messages, *m)
	return nil
}

func (r *memMessageRepo) GetChatMessages(ctx context.Context, chatID uuid.UUID) ([]message.Message, error) {
	var result []message.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memMessageRepo) GetLatestMessage(ctx context.Context, chatID uuid.UUID) (message.Message, error) {
	all, _ := r.GetChatMessages(ctx, chatID)
	if len(all) == 0 {
		return message.Message{}, telechat_errors.ErrNotFound
	}
	return all[len(all)-1], nil
}

func (r *memMessageRepo) CountByChat(ctx context.Context, chatID uuid.UUID) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ChatID == chatID {
			count++
		}
	}
	return count, nil
}
