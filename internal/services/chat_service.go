package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telechat/internal/domain/chat"
	"telechat/internal/repository"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService owns chat creation and the per-user chat listing.
type ChatService struct {
	db       *gorm.DB
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	msgRepo  repository.MessageRepository
}

func NewChatService(db *gorm.DB, chatRepo repository.ChatRepository, userRepo repository.UserRepository, msgRepo repository.MessageRepository) *ChatService {
	return &ChatService{db: db, chatRepo: chatRepo, userRepo: userRepo, msgRepo: msgRepo}
}

type CreateChatInput struct {
	CreatorID uuid.UUID
	Type      string
	Title     string
	AvatarURL string
	MemberIDs []uuid.UUID
}

type CreateChatResult struct {
	ChatID           uuid.UUID
	SkippedMemberIDs []uuid.UUID
}

// ChatSummary is one row of the chat list: the chat plus its most recent
// message and total message count. Last-message fields are nil for chats
// without messages.
type ChatSummary struct {
	ID              uuid.UUID
	Type            string
	Title           string
	AvatarURL       string
	LastMessage     *string
	LastMessageTime *time.Time
	LastSender      *string
	MessageCount    int64
}

// CreateChat always inserts a fresh chat; private chats between the same
// two users are not deduplicated. The creator becomes owner, every
// existing candidate id becomes a member and unknown ids are reported back
// in SkippedMemberIDs rather than failing the call. The chat row and all
// membership rows share one transaction.
func (s *ChatService) CreateChat(ctx context.Context, in CreateChatInput) (CreateChatResult, error) {
	if in.CreatorID == uuid.Nil {
		return CreateChatResult{}, telechat_errors.ErrInvalidInput
	}
	if in.Type != chat.TypePrivate && in.Type != chat.TypeGroup {
		return CreateChatResult{}, telechat_errors.ErrInvalidInput
	}

	if s.db == nil {
		return s.createChat(ctx, s.chatRepo, s.userRepo, in)
	}

	var result CreateChatResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.createChat(ctx, repository.NewChatRepository(tx), repository.NewUserRepository(tx), in)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return CreateChatResult{}, err
	}
	return result, nil
}

func (s *ChatService) createChat(ctx context.Context, chatRepo repository.ChatRepository, userRepo repository.UserRepository, in CreateChatInput) (CreateChatResult, error) {
	c := chat.Chat{
		ID:        uuid.New(),
		Type:      in.Type,
		Title:     toNullString(in.Title),
		AvatarURL: toNullString(in.AvatarURL),
		CreatedAt: time.Now(),
	}
	if err := chatRepo.Create(ctx, &c); err != nil {
		return CreateChatResult{}, err
	}

	owner := chat.ChatMember{
		ChatID:   c.ID,
		UserID:   in.CreatorID,
		Role:     chat.RoleOwner,
		JoinedAt: time.Now(),
	}
	if err := chatRepo.AddMember(ctx, &owner); err != nil {
		return CreateChatResult{}, err
	}

	skipped := make([]uuid.UUID, 0)
	seen := map[uuid.UUID]bool{in.CreatorID: true}
	for _, memberID := range in.MemberIDs {
		if seen[memberID] {
			continue
		}
		seen[memberID] = true

		exists, err := userRepo.Exists(ctx, memberID)
		if err != nil {
			return CreateChatResult{}, err
		}
		if !exists {
			skipped = append(skipped, memberID)
			continue
		}

		m := chat.ChatMember{
			ChatID:   c.ID,
			UserID:   memberID,
			Role:     chat.RoleMember,
			JoinedAt: time.Now(),
		}
		if err := chatRepo.AddMember(ctx, &m); err != nil {
			return CreateChatResult{}, err
		}
	}

	return CreateChatResult{ChatID: c.ID, SkippedMemberIDs: skipped}, nil
}

// ListChats returns exactly one summary per chat the user belongs to,
// including chats with no messages.
func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID) ([]ChatSummary, error) {
	chats, err := s.chatRepo.GetUserChats(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		summary := ChatSummary{
			ID:        c.ID,
			Type:      c.Type,
			Title:     c.Title.String,
			AvatarURL: c.AvatarURL.String,
		}

		count, err := s.msgRepo.CountByChat(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		summary.MessageCount = count

		latest, err := s.msgRepo.GetLatestMessage(ctx, c.ID)
		if err != nil {
			if !errors.Is(err, telechat_errors.ErrNotFound) {
				return nil, err
			}
			summaries = append(summaries, summary)
			continue
		}

		summary.LastMessage = &latest.Text
		ts := latest.CreatedAt
		summary.LastMessageTime = &ts

		sender, err := s.userRepo.GetByID(ctx, latest.UserID)
		if err == nil {
			summary.LastSender = &sender.Username
		} else if !errors.Is(err, telechat_errors.ErrNotFound) {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func toNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
