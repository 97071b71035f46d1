package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AlissonS47/backend-assessment/internal/domain"
	"github.com/AlissonS47/backend-assessment/internal/repository"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrActionDenied    = errors.New("action denied")
	ErrEmptyMessage    = errors.New("message is required")
	ErrInvalidStatus   = errors.New("status must be A (approved) or R (rejected)")
	ErrAlreadyReviewed = errors.New("request has already been reviewed")
)

const requestListCacheKey = "requests:all"

type RequestService interface {
	Create(ctx context.Context, auth domain.AuthContext, input domain.CreateRequestInput) (*domain.Request, error)
	List(ctx context.Context, auth domain.AuthContext, checked *bool) ([]domain.Request, error)
	GetByID(ctx context.Context, auth domain.AuthContext, id uuid.UUID) (*domain.Request, error)
	UpdateStatus(ctx context.Context, auth domain.AuthContext, id uuid.UUID, input domain.UpdateRequestStatusInput) (*domain.Request, error)
	Delete(ctx context.Context, auth domain.AuthContext, id uuid.UUID) error
}

type requestService struct {
	requestRepo  repository.RequestRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	emailService EmailService
	redis        *redis.Client
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	emailService EmailService,
	redis *redis.Client,
) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		emailService: emailService,
		redis:        redis,
	}
}

func (s *requestService) Create(ctx context.Context, auth domain.AuthContext, input domain.CreateRequestInput) (*domain.Request, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrEmptyMessage
	}

	req := &domain.Request{
		ID:      uuid.New(),
		UserID:  auth.UserID,
		Message: input.Message,
		Checked: false,
		Status:  domain.StatusUnset,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     auth.UserID,
		Action:     "CREATE",
		EntityType: "REQUEST",
		EntityID:   req.ID,
		NewValue:   req,
	})

	s.invalidateListCache(ctx)

	return req, nil
}

// List is owner-scoped for regular users; staff see every request with the
// owner's name attached. The unfiltered staff listing is cached briefly since
// it is the reviewer dashboard's hot query.
func (s *requestService) List(ctx context.Context, auth domain.AuthContext, checked *bool) ([]domain.Request, error) {
	if !auth.IsStaff {
		return s.requestRepo.ListByUser(ctx, auth.UserID, checked)
	}

	if checked == nil && s.redis != nil {
		if cached, err := s.redis.Get(ctx, requestListCacheKey).Result(); err == nil {
			var requests []domain.Request
			if json.Unmarshal([]byte(cached), &requests) == nil {
				return requests, nil
			}
		}
	}

	requests, err := s.requestRepo.ListAll(ctx, checked)
	if err != nil {
		return nil, err
	}

	if checked == nil && s.redis != nil {
		if data, err := json.Marshal(requests); err == nil {
			_ = s.redis.Set(ctx, requestListCacheKey, data, 5*time.Minute).Err()
		}
	}

	return requests, nil
}

func (s *requestService) GetByID(ctx context.Context, auth domain.AuthContext, id uuid.UUID) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	if !auth.CanView(req) {
		return nil, ErrActionDenied
	}

	// The owner's name is a staff-only field.
	if !auth.IsStaff {
		req.Name = nil
	}

	return req, nil
}

func (s *requestService) UpdateStatus(ctx context.Context, auth domain.AuthContext, id uuid.UUID, input domain.UpdateRequestStatusInput) (*domain.Request, error) {
	if !auth.CanReview() {
		return nil, ErrActionDenied
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if req.Checked {
		return nil, ErrAlreadyReviewed
	}

	oldReq := *req

	if err := s.requestRepo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, err
	}
	req.Status = input.Status
	req.Checked = true

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     auth.UserID,
		Action:     "REVIEW",
		EntityType: "REQUEST",
		EntityID:   req.ID,
		OldValue:   oldReq,
		NewValue:   req,
	})

	s.invalidateListCache(ctx)

	owner, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	// The outcome email is part of the review operation: a delivery failure
	// fails the call even though the status change is already persisted.
	if err := s.emailService.SendRequestResultEmail(ctx, owner.Email, owner.Username, input.Status); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *requestService) Delete(ctx context.Context, auth domain.AuthContext, id uuid.UUID) error {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	// Deleting is the owner's capability alone; staff cannot cancel another
	// user's request.
	if !auth.CanDelete(req) {
		return ErrActionDenied
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     auth.UserID,
		Action:     "DELETE",
		EntityType: "REQUEST",
		EntityID:   req.ID,
		OldValue:   req,
	})

	s.invalidateListCache(ctx)

	return nil
}

func (s *requestService) invalidateListCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, requestListCacheKey).Err()
	}
}
