package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AlissonS47/backend-assessment/internal/domain"
	"github.com/AlissonS47/backend-assessment/internal/service"
	"github.com/AlissonS47/backend-assessment/tests/mocks"
)

func newRequestService(reqRepo *mocks.RequestRepository, userRepo *mocks.UserRepository, auditRepo *mocks.AuditLogRepository, emailSvc *mocks.EmailService) service.RequestService {
	return service.NewRequestService(reqRepo, userRepo, auditRepo, emailSvc, nil)
}

func ownerAuth(userID uuid.UUID) domain.AuthContext {
	return domain.AuthContext{UserID: userID, Username: "test.user", IsStaff: false}
}

func staffAuth(userID uuid.UUID) domain.AuthContext {
	return domain.AuthContext{UserID: userID, Username: "super.user", IsStaff: true}
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), auditRepo, new(mocks.EmailService))

		reqRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.UserID == callerID && r.Message == "ping" && !r.Checked && r.Status == domain.StatusUnset
		})).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()

		req, err := svc.Create(ctx, ownerAuth(callerID), domain.CreateRequestInput{Message: "ping"})

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, callerID, req.UserID)
		assert.Equal(t, "ping", req.Message)
		assert.False(t, req.Checked)
		assert.Equal(t, domain.StatusUnset, req.Status)

		reqRepo.AssertExpectations(t)
	})

	t.Run("Validation Error - Empty Message", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		req, err := svc.Create(ctx, ownerAuth(callerID), domain.CreateRequestInput{Message: "   "})

		assert.ErrorIs(t, err, service.ErrEmptyMessage)
		assert.Nil(t, req)
		reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Persistence Failure", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("Create", ctx, mock.AnythingOfType("*domain.Request")).Return(errors.New("connection refused")).Once()

		req, err := svc.Create(ctx, ownerAuth(callerID), domain.CreateRequestInput{Message: "ping"})

		assert.Error(t, err)
		assert.Nil(t, req)
	})
}

func TestRequestService_List(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	t.Run("Non-Staff Scoped To Owner", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		own := []domain.Request{
			{ID: uuid.New(), UserID: callerID, Message: "mine"},
		}
		reqRepo.On("ListByUser", ctx, callerID, (*bool)(nil)).Return(own, nil).Once()

		requests, err := svc.List(ctx, ownerAuth(callerID), nil)

		assert.NoError(t, err)
		assert.Len(t, requests, 1)
		for _, r := range requests {
			assert.Equal(t, callerID, r.UserID)
		}
		reqRepo.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
		reqRepo.AssertExpectations(t)
	})

	t.Run("Staff Sees All With Checked Filter", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		name := "test.user"
		all := []domain.Request{
			{ID: uuid.New(), UserID: uuid.New(), Name: &name, Message: "a", Checked: true, Status: domain.StatusApproved},
			{ID: uuid.New(), UserID: uuid.New(), Name: &name, Message: "b", Checked: true, Status: domain.StatusRejected},
		}
		checked := true
		reqRepo.On("ListAll", ctx, &checked).Return(all, nil).Once()

		requests, err := svc.List(ctx, staffAuth(uuid.New()), &checked)

		assert.NoError(t, err)
		assert.Len(t, requests, 2)
		assert.NotNil(t, requests[0].Name)
		reqRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
		reqRepo.AssertExpectations(t)
	})
}

func TestRequestService_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	reqID := uuid.New()
	name := "test.user"

	stored := func() *domain.Request {
		return &domain.Request{ID: reqID, UserID: ownerID, Name: &name, Message: "ping"}
	}

	t.Run("Owner Gets Limited Detail", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(stored(), nil).Once()

		req, err := svc.GetByID(ctx, ownerAuth(ownerID), reqID)

		assert.NoError(t, err)
		assert.Equal(t, "ping", req.Message)
		assert.Nil(t, req.Name)
	})

	t.Run("Staff Gets Full Detail", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(stored(), nil).Once()

		req, err := svc.GetByID(ctx, staffAuth(uuid.New()), reqID)

		assert.NoError(t, err)
		assert.NotNil(t, req.Name)
		assert.Equal(t, "test.user", *req.Name)
	})

	t.Run("Non-Owner Denied", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(stored(), nil).Once()

		req, err := svc.GetByID(ctx, ownerAuth(uuid.New()), reqID)

		assert.ErrorIs(t, err, service.ErrActionDenied)
		assert.Nil(t, req)
	})

	t.Run("Not Found", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(nil, nil).Once()

		req, err := svc.GetByID(ctx, ownerAuth(ownerID), reqID)

		assert.ErrorIs(t, err, service.ErrRequestNotFound)
		assert.Nil(t, req)
	})
}

func TestRequestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	reviewerID := uuid.New()
	reqID := uuid.New()

	unreviewed := func() *domain.Request {
		return &domain.Request{ID: reqID, UserID: ownerID, Message: "ping", Checked: false, Status: domain.StatusUnset}
	}
	owner := &domain.User{ID: ownerID, Username: "test.user", Email: "test.user@example.com"}

	t.Run("Success - Approved", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		userRepo := new(mocks.UserRepository)
		auditRepo := new(mocks.AuditLogRepository)
		emailSvc := new(mocks.EmailService)
		svc := newRequestService(reqRepo, userRepo, auditRepo, emailSvc)

		reqRepo.On("GetByID", ctx, reqID).Return(unreviewed(), nil).Once()
		reqRepo.On("UpdateStatus", ctx, reqID, domain.StatusApproved).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()
		emailSvc.On("SendRequestResultEmail", ctx, "test.user@example.com", "test.user", domain.StatusApproved).Return(nil).Once()

		req, err := svc.UpdateStatus(ctx, staffAuth(reviewerID), reqID, domain.UpdateRequestStatusInput{Status: domain.StatusApproved})

		assert.NoError(t, err)
		assert.True(t, req.Checked)
		assert.Equal(t, domain.StatusApproved, req.Status)

		reqRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Success - Rejected", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		userRepo := new(mocks.UserRepository)
		auditRepo := new(mocks.AuditLogRepository)
		emailSvc := new(mocks.EmailService)
		svc := newRequestService(reqRepo, userRepo, auditRepo, emailSvc)

		reqRepo.On("GetByID", ctx, reqID).Return(unreviewed(), nil).Once()
		reqRepo.On("UpdateStatus", ctx, reqID, domain.StatusRejected).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()
		emailSvc.On("SendRequestResultEmail", ctx, "test.user@example.com", "test.user", domain.StatusRejected).Return(nil).Once()

		req, err := svc.UpdateStatus(ctx, staffAuth(reviewerID), reqID, domain.UpdateRequestStatusInput{Status: domain.StatusRejected})

		assert.NoError(t, err)
		assert.True(t, req.Checked)
		assert.Equal(t, domain.StatusRejected, req.Status)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Non-Staff Denied Without Mutation", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		req, err := svc.UpdateStatus(ctx, ownerAuth(ownerID), reqID, domain.UpdateRequestStatusInput{Status: domain.StatusApproved})

		assert.ErrorIs(t, err, service.ErrActionDenied)
		assert.Nil(t, req)
		reqRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		reqRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Validation Error - Invalid Status", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(unreviewed(), nil).Once()

		req, err := svc.UpdateStatus(ctx, staffAuth(reviewerID), reqID, domain.UpdateRequestStatusInput{Status: "X"})

		assert.ErrorIs(t, err, service.ErrInvalidStatus)
		assert.Nil(t, req)
		reqRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Validation Error - Already Reviewed", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reviewed := unreviewed()
		reviewed.Checked = true
		reviewed.Status = domain.StatusApproved
		reqRepo.On("GetByID", ctx, reqID).Return(reviewed, nil).Once()

		req, err := svc.UpdateStatus(ctx, staffAuth(reviewerID), reqID, domain.UpdateRequestStatusInput{Status: domain.StatusRejected})

		assert.ErrorIs(t, err, service.ErrAlreadyReviewed)
		assert.Nil(t, req)
	})

	t.Run("Not Found", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(nil, nil).Once()

		req, err := svc.UpdateStatus(ctx, staffAuth(reviewerID), reqID, domain.UpdateRequestStatusInput{Status: domain.StatusApproved})

		assert.ErrorIs(t, err, service.ErrRequestNotFound)
		assert.Nil(t, req)
	})

	t.Run("Notifier Failure After Persisted Mutation", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		userRepo := new(mocks.UserRepository)
		auditRepo := new(mocks.AuditLogRepository)
		emailSvc := new(mocks.EmailService)
		svc := newRequestService(reqRepo, userRepo, auditRepo, emailSvc)

		sendErr := errors.New("resend: delivery failed")
		reqRepo.On("GetByID", ctx, reqID).Return(unreviewed(), nil).Once()
		reqRepo.On("UpdateStatus", ctx, reqID, domain.StatusApproved).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()
		emailSvc.On("SendRequestResultEmail", ctx, "test.user@example.com", "test.user", domain.StatusApproved).Return(sendErr).Once()

		req, err := svc.UpdateStatus(ctx, staffAuth(reviewerID), reqID, domain.UpdateRequestStatusInput{Status: domain.StatusApproved})

		// The status change was persisted, yet the caller still sees the failure.
		assert.ErrorIs(t, err, sendErr)
		assert.Nil(t, req)
		reqRepo.AssertExpectations(t)
	})
}

func TestRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	reqID := uuid.New()

	stored := func() *domain.Request {
		return &domain.Request{ID: reqID, UserID: ownerID, Message: "ping"}
	}

	t.Run("Owner Deletes", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		auditRepo := new(mocks.AuditLogRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), auditRepo, new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(stored(), nil).Once()
		reqRepo.On("Delete", ctx, reqID).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Maybe()

		err := svc.Delete(ctx, ownerAuth(ownerID), reqID)

		assert.NoError(t, err)
		reqRepo.AssertExpectations(t)
	})

	t.Run("Non-Owner Denied", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(stored(), nil).Once()

		err := svc.Delete(ctx, ownerAuth(uuid.New()), reqID)

		assert.ErrorIs(t, err, service.ErrActionDenied)
		reqRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Staff Cannot Delete Another's Request", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(stored(), nil).Once()

		err := svc.Delete(ctx, staffAuth(uuid.New()), reqID)

		assert.ErrorIs(t, err, service.ErrActionDenied)
		reqRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		reqRepo := new(mocks.RequestRepository)
		svc := newRequestService(reqRepo, new(mocks.UserRepository), new(mocks.AuditLogRepository), new(mocks.EmailService))

		reqRepo.On("GetByID", ctx, reqID).Return(nil, nil).Once()

		err := svc.Delete(ctx, ownerAuth(ownerID), reqID)

		assert.ErrorIs(t, err, service.ErrRequestNotFound)
	})
}
