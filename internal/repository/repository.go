package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User     UserRepository
	Request  RequestRepository
	Session  SessionRepository
	AuditLog AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Request:  NewRequestRepository(db),
		Session:  NewSessionRepository(db),
		AuditLog: NewAuditLogRepository(db),
	}
}
