package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/converter"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound     = errors.New("message not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrMessagingNotAllowed = errors.New("messaging requires a shared appointment")
)

type MessageUsecase interface {
	Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	Reply(ctx context.Context, senderID, parentID uuid.UUID, req *dto.ReplyMessageRequest) (*dto.MessageResponse, error)
	GetConversation(ctx context.Context, userID, otherID uuid.UUID) (*dto.MessageListResponse, error)
	Inbox(ctx context.Context, userID uuid.UUID) (*dto.MessageListResponse, error)
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*dto.MessageResponse, error)
}

type messageUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	messageRepo     repository.MessageRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
}

func NewMessageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
) MessageUsecase {
	return &messageUsecase{
		db:              db,
		log:             log,
		messageRepo:     messageRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

func (u *messageUsecase) Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, ErrRecipientNotFound
	}

	recipient, err := u.userRepo.FindByID(u.db.WithContext(ctx), recipientID)
	if err != nil {
		u.log.Warnf("Failed to find recipient: %+v", err)
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	if err := u.checkMessagingAllowed(ctx, senderID, recipient); err != nil {
		return nil, err
	}

	message := &entity.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     req.Subject,
		Content:     req.Content,
	}

	if err := u.messageRepo.Create(u.db.WithContext(ctx), message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}

func (u *messageUsecase) Reply(ctx context.Context, senderID, parentID uuid.UUID, req *dto.ReplyMessageRequest) (*dto.MessageResponse, error) {
	parent, err := u.messageRepo.FindByID(u.db.WithContext(ctx), parentID)
	if err != nil {
		u.log.Warnf("Failed to find parent message: %+v", err)
		return nil, err
	}
	if parent == nil {
		return nil, ErrMessageNotFound
	}

	// Only the two participants of the thread may continue it.
	var recipientID uuid.UUID
	switch senderID {
	case parent.SenderID:
		recipientID = parent.RecipientID
	case parent.RecipientID:
		recipientID = parent.SenderID
	default:
		return nil, ErrNotParticipant
	}

	message := &entity.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		ParentID:    &parent.ID,
		Subject:     parent.Subject,
		Content:     req.Content,
	}

	if err := u.messageRepo.Create(u.db.WithContext(ctx), message); err != nil {
		u.log.Warnf("Failed to create reply: %+v", err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}

func (u *messageUsecase) GetConversation(ctx context.Context, userID, otherID uuid.UUID) (*dto.MessageListResponse, error) {
	messages, err := u.messageRepo.FindConversation(u.db.WithContext(ctx), userID, otherID)
	if err != nil {
		u.log.Warnf("Failed to load conversation: %+v", err)
		return nil, err
	}
	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *messageUsecase) Inbox(ctx context.Context, userID uuid.UUID) (*dto.MessageListResponse, error) {
	messages, err := u.messageRepo.FindInboxByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to load inbox: %+v", err)
		return nil, err
	}
	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *messageUsecase) MarkRead(ctx context.Context, userID, messageID uuid.UUID) (*dto.MessageResponse, error) {
	message, err := u.messageRepo.FindByID(u.db.WithContext(ctx), messageID)
	if err != nil {
		u.log.Warnf("Failed to find message: %+v", err)
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	if message.RecipientID != userID {
		return nil, ErrNotParticipant
	}

	if !message.IsRead {
		message.MarkRead(time.Now().UTC())
		if err := u.messageRepo.Update(u.db.WithContext(ctx), message); err != nil {
			u.log.Warnf("Failed to mark message read: %+v", err)
			return nil, err
		}
	}

	return converter.MessageToResponse(message), nil
}

// checkMessagingAllowed enforces the doctor-patient messaging rule: both
// parties must share at least one non-cancelled appointment. Admins are not
// part of the messaging surface.
func (u *messageUsecase) checkMessagingAllowed(ctx context.Context, senderID uuid.UUID, recipient *entity.User) error {
	sender, err := u.userRepo.FindByID(u.db.WithContext(ctx), senderID)
	if err != nil {
		u.log.Warnf("Failed to find sender: %+v", err)
		return err
	}
	if sender == nil {
		return ErrUserNotFound
	}

	var doctorID, patientID uuid.UUID
	switch {
	case sender.IsDoctor() && recipient.IsPatient():
		doctorID, patientID = sender.ID, recipient.ID
	case sender.IsPatient() && recipient.IsDoctor():
		doctorID, patientID = recipient.ID, sender.ID
	default:
		return ErrMessagingNotAllowed
	}

	shared, err := u.appointmentRepo.ExistsBetween(u.db.WithContext(ctx), doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check shared appointment: %+v", err)
		return err
	}
	if !shared {
		return ErrMessagingNotAllowed
	}
	return nil
}
