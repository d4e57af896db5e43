package converter

import (
	"github.com/google/uuid"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
)

// MessageToResponse converts a Message entity to its response DTO
func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	response := &dto.MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		ParentID:    message.ParentID,
		Subject:     message.Subject,
		Content:     message.Content,
		IsRead:      message.IsRead,
		ReadAt:      message.ReadAt,
		CreatedAt:   message.CreatedAt,
	}

	if message.Sender.ID != uuid.Nil {
		response.Sender = UserToResponse(&message.Sender)
	}

	return response
}

// MessagesToResponses converts a slice of messages
func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, message := range messages {
		resp := MessageToResponse(&message)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
