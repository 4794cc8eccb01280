package httpdto

import (
	"time"

	"telechat/internal/services"
)

// ChatActionRequest is the action-dispatch body of POST /chats.
type ChatActionRequest struct {
	Action    string   `json:"action"`
	ChatID    string   `json:"chat_id"`
	Text      string   `json:"text"`
	ReplyTo   string   `json:"reply_to"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	AvatarURL string   `json:"avatar_url"`
	MemberIDs []string `json:"member_ids"`
}

// Field casing below mirrors the legacy client contract: snake_case for
// chat attributes, camelCase for the derived last-message fields.
type ChatSummaryDTO struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Title           string  `json:"title"`
	AvatarURL       string  `json:"avatar_url"`
	LastMessage     *string `json:"lastMessage"`
	LastMessageTime *string `json:"lastMessageTime"`
	LastSender      *string `json:"lastSender"`
	MessageCount    int64   `json:"messageCount"`
}

type GetChatsResponse struct {
	Chats []ChatSummaryDTO `json:"chats"`
}

type MessageUserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type MessageDTO struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"createdAt"`
	Edited    bool           `json:"edited"`
	ReplyTo   *string        `json:"replyTo"`
	User      MessageUserDTO `json:"user"`
}

type GetMessagesResponse struct {
	Messages []MessageDTO `json:"messages"`
}

type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
	CreatedAt string `json:"created_at"`
}

type CreateChatResponse struct {
	Success          bool     `json:"success"`
	ChatID           string   `json:"chat_id"`
	SkippedMemberIDs []string `json:"skipped_member_ids,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromChatSummary(s services.ChatSummary) ChatSummaryDTO {
	dto := ChatSummaryDTO{
		ID:           s.ID.String(),
		Type:         s.Type,
		Title:        s.Title,
		AvatarURL:    s.AvatarURL,
		LastMessage:  s.LastMessage,
		LastSender:   s.LastSender,
		MessageCount: s.MessageCount,
	}
	if s.LastMessageTime != nil {
		ts := s.LastMessageTime.Format(time.RFC3339)
		dto.LastMessageTime = &ts
	}
	return dto
}

func FromChatSummarySlice(items []services.ChatSummary) []ChatSummaryDTO {
	dtos := make([]ChatSummaryDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, FromChatSummary(item))
	}
	return dtos
}

func FromMessageView(v services.MessageView) MessageDTO {
	dto := MessageDTO{
		ID:        v.ID.String(),
		Text:      v.Text,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		Edited:    v.Edited,
		User: MessageUserDTO{
			ID:        v.User.ID.String(),
			Username:  v.User.Username,
			AvatarURL: v.User.AvatarURL,
		},
	}
	if v.ReplyTo != nil {
		id := v.ReplyTo.String()
		dto.ReplyTo = &id
	}
	return dto
}

func FromMessageViewSlice(items []services.MessageView) []MessageDTO {
	dtos := make([]MessageDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, FromMessageView(item))
	}
	return dtos
}
