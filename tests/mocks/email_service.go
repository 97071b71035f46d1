package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/AlissonS47/backend-assessment/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendRequestResultEmail(ctx context.Context, toEmail, username string, status domain.RequestStatus) error {
	args := m.Called(ctx, toEmail, username, status)
	return args.Error(0)
}
