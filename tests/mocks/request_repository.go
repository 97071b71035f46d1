package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/AlissonS47/backend-assessment/internal/domain"
)

type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) ListAll(ctx context.Context, checked *bool) ([]domain.Request, error) {
	args := m.Called(ctx, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *RequestRepository) ListByUser(ctx context.Context, userID uuid.UUID, checked *bool) ([]domain.Request, error) {
	args := m.Called(ctx, userID, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
