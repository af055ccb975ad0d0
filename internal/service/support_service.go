package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupportService is an append-only inbox. There is deliberately no read API.
type SupportService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewSupportService(store repository.Store, logger *zap.Logger) *SupportService {
	return &SupportService{store: store, logger: logger}
}

func (s *SupportService) Submit(ctx context.Context, accountNumber, subject, message string) (*models.SupportMessage, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("subject and message are required: %w", models.ErrInvalidInput)
	}
	msg := &models.SupportMessage{
		ID:            uuid.NewString(),
		AccountNumber: accountNumber,
		Subject:       subject,
		Message:       message,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateSupportMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Info("support message submitted",
		zap.String("message_id", msg.ID),
		zap.String("account_number", accountNumber))
	return msg, nil
}
