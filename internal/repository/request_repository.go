package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AlissonS47/backend-assessment/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListAll(ctx context.Context, checked *bool) ([]domain.Request, error)
	ListByUser(ctx context.Context, userID uuid.UUID, checked *bool) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (id, user_id, message, checked, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.Message, req.Checked, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

// GetByID always joins the owner's username; callers decide whether the name
// may be exposed to the requesting user.
func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `
		SELECT r.*, u.username AS owner_name
		FROM requests r
		JOIN users u ON r.user_id = u.id
		WHERE r.id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListAll(ctx context.Context, checked *bool) ([]domain.Request, error) {
	requests := []domain.Request{}

	if checked != nil {
		query := `
			SELECT r.*, u.username AS owner_name
			FROM requests r
			JOIN users u ON r.user_id = u.id
			WHERE r.checked = $1
			ORDER BY r.created_at DESC`
		err := r.db.SelectContext(ctx, &requests, query, *checked)
		return requests, err
	}

	query := `
		SELECT r.*, u.username AS owner_name
		FROM requests r
		JOIN users u ON r.user_id = u.id
		ORDER BY r.created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query)
	return requests, err
}

func (r *requestRepository) ListByUser(ctx context.Context, userID uuid.UUID, checked *bool) ([]domain.Request, error) {
	requests := []domain.Request{}

	if checked != nil {
		query := `
			SELECT * FROM requests
			WHERE user_id = $1 AND checked = $2
			ORDER BY created_at DESC`
		err := r.db.SelectContext(ctx, &requests, query, userID, *checked)
		return requests, err
	}

	query := `
		SELECT * FROM requests
		WHERE user_id = $1
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	query := `
		UPDATE requests
		SET status = $2, checked = TRUE, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM requests WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
