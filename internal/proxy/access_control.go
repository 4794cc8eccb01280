package proxy

import (
	"context"

	"telechat/internal/repository"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
)

// AccessControl decides whether a user may act on a chat. Access is granted
// solely by presence of a chat_members row; reads and writes go through the
// same gate.
type AccessControl struct {
	chatRepo repository.ChatRepository
}

func NewAccessControl(chatRepo repository.ChatRepository) *AccessControl {
	return &AccessControl{chatRepo: chatRepo}
}

func (a *AccessControl) CanReadChat(ctx context.Context, userID, chatID uuid.UUID) error {
	return a.ensureMember(ctx, chatID, userID)
}

func (a *AccessControl) CanSendMessage(ctx context.Context, userID, chatID uuid.UUID) error {
	return a.ensureMember(ctx, chatID, userID)
}

func (a *AccessControl) ensureMember(ctx context.Context, chatID, userID uuid.UUID) error {
	if a.chatRepo == nil {
		return telechat_errors.ErrForbidden
	}
	ok, err := a.chatRepo.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return telechat_errors.ErrForbidden
	}
	return nil
}
