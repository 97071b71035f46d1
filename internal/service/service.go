package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/AlissonS47/backend-assessment/internal/config"
	"github.com/AlissonS47/backend-assessment/internal/repository"
)

type Services struct {
	Auth    AuthService
	Request RequestService
	Email   EmailService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, repos.Session, cfg)
	requestService := NewRequestService(repos.Request, repos.User, repos.AuditLog, emailService, redis)

	return &Services{
		Auth:    authService,
		Request: requestService,
		Email:   emailService,
	}
}
