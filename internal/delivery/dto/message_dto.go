package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	Subject     string `json:"subject,omitempty" validate:"omitempty,max=255"`
	Content     string `json:"content" validate:"required"`
}

type ReplyMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MessageResponse struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`

	Subject string `json:"subject,omitempty"`
	Content string `json:"content"`

	IsRead bool       `json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	Sender *UserResponse `json:"sender,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
