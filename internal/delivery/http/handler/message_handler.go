package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/middleware"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/usecase"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/response"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

// Send sends a message to a care counterpart
// @Summary Send a message
// @Tags Messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /messages [post]
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.Send(r.Context(), senderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRecipientNotFound):
			response.NotFound(w, "Recipient not found")
		case errors.Is(err, usecase.ErrMessagingNotAllowed):
			response.Forbidden(w, "Messaging requires a shared appointment")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent", message)
}

// Reply continues a thread
// @Summary Reply to a message
// @Tags Messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Parent Message ID"
// @Param request body dto.ReplyMessageRequest true "Reply"
// @Success 201 {object} response.Response
// @Router /messages/{id}/reply [post]
func (h *MessageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	parentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid message ID", nil)
		return
	}

	var req dto.ReplyMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.Reply(r.Context(), senderID, parentID, &req)
	if err != nil {
		h.writeMessageError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Reply sent", message)
}

// Inbox lists received messages
// @Summary Get inbox
// @Tags Messages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /messages [get]
func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	messages, err := h.messageUsecase.Inbox(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to load inbox")
		return
	}

	response.Success(w, http.StatusOK, "Inbox retrieved", messages)
}

// Conversation lists the exchange with another user
// @Summary Get a conversation
// @Tags Messages
// @Security BearerAuth
// @Produce json
// @Param id path string true "Other User ID"
// @Success 200 {object} response.Response
// @Router /messages/conversation/{id} [get]
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	otherID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	messages, err := h.messageUsecase.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		response.InternalServerError(w, "Failed to load conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved", messages)
}

// MarkRead marks a received message as read
// @Summary Mark a message read
// @Tags Messages
// @Security BearerAuth
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Response
// @Router /messages/{id}/read [put]
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	messageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid message ID", nil)
		return
	}

	message, err := h.messageUsecase.MarkRead(r.Context(), userID, messageID)
	if err != nil {
		h.writeMessageError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Message marked as read", message)
}

func (h *MessageHandler) writeMessageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrMessageNotFound):
		response.NotFound(w, "Message not found")
	case errors.Is(err, usecase.ErrNotParticipant):
		response.Forbidden(w, "Not a participant of this thread")
	default:
		response.InternalServerError(w, "Failed to process message")
	}
}
