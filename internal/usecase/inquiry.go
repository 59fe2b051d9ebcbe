package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const inquiryStatusNew = "new"

// InquiryUseCase handles the public contact form.
type InquiryUseCase struct {
	inquiries repository.InquiryRepository
	notifier  Notifier
	logger    *slog.Logger
}

// NewInquiryUseCase constructs InquiryUseCase.
func NewInquiryUseCase(inquiries repository.InquiryRepository, notifier Notifier, logger *slog.Logger) *InquiryUseCase {
	return &InquiryUseCase{inquiries: inquiries, notifier: notifier, logger: logger}
}

// Submit stores an inquiry and notifies admins.
func (u *InquiryUseCase) Submit(ctx context.Context, name, email, subject, message string) (string, error) {
	in := &model.Inquiry{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
		Status:  inquiryStatusNew,
	}
	if in.Name == "" || in.Message == "" {
		return "", domainErrors.ErrInvalidInquiry
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return "", fmt.Errorf("%w: invalid email", domainErrors.ErrInvalidInquiry)
	}

	id, err := u.inquiries.Create(ctx, in)
	if err != nil {
		u.logger.Error("inquiry insert failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", domainErrors.ErrInquiryWriteFailed, err)
	}
	in.ID = id

	notifyBestEffort(ctx, u.notifier, u.logger, model.InquiryNotification(*in))
	return id, nil
}

// List returns submitted inquiries, newest first.
func (u *InquiryUseCase) List(ctx context.Context) ([]model.Inquiry, error) {
	return u.inquiries.List(ctx)
}
