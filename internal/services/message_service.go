package services

import (
	"context"
	"time"

	"telechat/internal/domain/message"
	"telechat/internal/proxy"
	"telechat/internal/repository"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
)

// MessageService owns message reads and writes. Both paths require
// membership in the target chat.
type MessageService struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	access   *proxy.AccessControl
}

func NewMessageService(msgRepo repository.MessageRepository, userRepo repository.UserRepository, access *proxy.AccessControl) *MessageService {
	return &MessageService{msgRepo: msgRepo, userRepo: userRepo, access: access}
}

type UserInfo struct {
	ID        uuid.UUID
	Username  string
	AvatarURL string
}

type MessageView struct {
	ID        uuid.UUID
	Text      string
	CreatedAt time.Time
	Edited    bool
	ReplyTo   *uuid.UUID
	User      UserInfo
}

type SendMessageInput struct {
	ChatID   uuid.UUID
	SenderID uuid.UUID
	Text     string
	ReplyTo  *uuid.UUID
}

type SendMessageResult struct {
	MessageID uuid.UUID
	CreatedAt time.Time
}

// GetChatMessages returns the full chat history ascending by creation
// time, each message joined with the author's public profile. Non-members
// get ErrForbidden and no message data.
func (s *MessageService) GetChatMessages(ctx context.Context, chatID, userID uuid.UUID) ([]MessageView, error) {
	if err := s.access.CanReadChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	messages, err := s.msgRepo.GetChatMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}

	authors := make(map[uuid.UUID]UserInfo)
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		author, ok := authors[m.UserID]
		if !ok {
			u, err := s.userRepo.GetByID(ctx, m.UserID)
			if err != nil {
				return nil, err
			}
			author = UserInfo{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL.String}
			authors[m.UserID] = author
		}

		view := MessageView{
			ID:        m.ID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
			Edited:    m.Edited,
			User:      author,
		}
		if m.ReplyTo.Valid {
			replyTo := m.ReplyTo.UUID
			view.ReplyTo = &replyTo
		}
		views = append(views, view)
	}

	return views, nil
}

// SendMessage inserts a message with a server-assigned timestamp. The
// sender must exist and be a member of the chat; membership implies the
// chat exists. ReplyTo is stored as given without checking the referenced
// message.
func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (SendMessageResult, error) {
	if in.Text == "" {
		return SendMessageResult{}, telechat_errors.ErrInvalidInput
	}

	exists, err := s.userRepo.Exists(ctx, in.SenderID)
	if err != nil {
		return SendMessageResult{}, err
	}
	if !exists {
		return SendMessageResult{}, telechat_errors.ErrNotFound
	}

	if err := s.access.CanSendMessage(ctx, in.SenderID, in.ChatID); err != nil {
		return SendMessageResult{}, err
	}

	m := message.Message{
		ID:        uuid.New(),
		ChatID:    in.ChatID,
		UserID:    in.SenderID,
		Text:      in.Text,
		CreatedAt: time.Now(),
	}
	if in.ReplyTo != nil {
		m.ReplyTo = uuid.NullUUID{UUID: *in.ReplyTo, Valid: true}
	}

	if err := s.msgRepo.Create(ctx, &m); err != nil {
		return SendMessageResult{}, err
	}

	return SendMessageResult{MessageID: m.ID, CreatedAt: m.CreatedAt}, nil
}
