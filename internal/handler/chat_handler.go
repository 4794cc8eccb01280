package handler

import (
	"errors"
	"net/http"
	"time"

	"telechat/internal/domain/chat"
	"telechat/internal/services"
	"telechat/internal/transport/httpdto"
	telechat_errors "telechat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler serves the action-dispatch chat endpoint. Caller identity is
// injected by the auth middleware; requests without it never get here.
type ChatHandler struct {
	chats    *services.ChatService
	messages *services.MessageService
}

func NewChatHandler(chats *services.ChatService, messages *services.MessageService) *ChatHandler {
	return &ChatHandler{chats: chats, messages: messages}
}

// HandleGet dispatches GET /chats on the action query parameter.
func (h *ChatHandler) HandleGet(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		return
	}

	switch c.DefaultQuery("action", "get_chats") {
	case "get_chats":
		h.getChats(c, userID)
	case "get_messages":
		h.getMessages(c, userID)
	default:
		c.JSON(http.StatusOK, httpdto.ErrorResponse{Error: "Unknown action"})
	}
}

// HandlePost dispatches POST /chats on the request body's action field.
func (h *ChatHandler) HandlePost(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req httpdto.ChatActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
		return
	}

	switch req.Action {
	case "send_message":
		h.sendMessage(c, userID, req)
	case "create_chat":
		h.createChat(c, userID, req)
	default:
		c.JSON(http.StatusOK, httpdto.ErrorResponse{Error: "Unknown action"})
	}
}

func (h *ChatHandler) getChats(c *gin.Context, userID uuid.UUID) {
	summaries, err := h.chats.ListChats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, httpdto.GetChatsResponse{Chats: httpdto.FromChatSummarySlice(summaries)})
}

func (h *ChatHandler) getMessages(c *gin.Context, userID uuid.UUID) {
	chatID, err := uuid.Parse(c.Query("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid chat_id"})
		return
	}

	views, err := h.messages.GetChatMessages(c.Request.Context(), chatID, userID)
	if err != nil {
		// Access denial is a soft error with HTTP 200; the legacy client
		// keys on the error field. No message data leaves the service.
		if errors.Is(err, telechat_errors.ErrForbidden) {
			c.JSON(http.StatusOK, httpdto.ErrorResponse{Error: "Access denied"})
			return
		}
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, httpdto.GetMessagesResponse{Messages: httpdto.FromMessageViewSlice(views)})
}

func (h *ChatHandler) sendMessage(c *gin.Context, userID uuid.UUID, req httpdto.ChatActionRequest) {
	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid chat_id"})
		return
	}

	input := services.SendMessageInput{
		ChatID:   chatID,
		SenderID: userID,
		Text:     req.Text,
	}
	if req.ReplyTo != "" {
		replyTo, err := uuid.Parse(req.ReplyTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid reply_to"})
			return
		}
		input.ReplyTo = &replyTo
	}

	res, err := h.messages.SendMessage(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, telechat_errors.ErrNotFound):
			c.JSON(http.StatusOK, httpdto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, telechat_errors.ErrForbidden):
			c.JSON(http.StatusOK, httpdto.ErrorResponse{Error: "Access denied"})
		default:
			c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.SendMessageResponse{
		Success:   true,
		MessageID: res.MessageID.String(),
		CreatedAt: res.CreatedAt.Format(time.RFC3339),
	})
}

func (h *ChatHandler) createChat(c *gin.Context, userID uuid.UUID, req httpdto.ChatActionRequest) {
	chatType := req.Type
	if chatType == "" {
		chatType = chat.TypePrivate
	}

	memberIDs := make([]uuid.UUID, 0, len(req.MemberIDs))
	skipped := make([]string, 0)
	for _, idStr := range req.MemberIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			// Unparseable ids can never match a user; report them as
			// skipped like any other unknown member.
			skipped = append(skipped, idStr)
			continue
		}
		memberIDs = append(memberIDs, id)
	}

	res, err := h.chats.CreateChat(c.Request.Context(), services.CreateChatInput{
		CreatorID: userID,
		Type:      chatType,
		Title:     req.Title,
		AvatarURL: req.AvatarURL,
		MemberIDs: memberIDs,
	})
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	for _, id := range res.SkippedMemberIDs {
		skipped = append(skipped, id.String())
	}

	c.JSON(http.StatusOK, httpdto.CreateChatResponse{
		Success:          true,
		ChatID:           res.ChatID.String(),
		SkippedMemberIDs: skipped,
	})
}
