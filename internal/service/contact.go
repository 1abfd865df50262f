package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/port"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactService stores contact form messages.
type ContactService struct {
	messages port.MessageStore
	logger   *zap.Logger
}

func NewContactService(messages port.MessageStore, logger *zap.Logger) *ContactService {
	return &ContactService{messages: messages, logger: logger}
}

// Submit validates and stores a message.
func (s *ContactService) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.SuccessResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return nil, &domain.ErrValidation{Message: "Name, email and message are required"}
	}

	m := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.InsertMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	s.logger.Info("contact message received", zap.String("message_id", m.ID))
	return &domain.SuccessResponse{Success: true, ID: m.ID}, nil
}
