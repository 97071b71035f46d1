package handler

import "github.com/AlissonS47/backend-assessment/internal/service"

type Handlers struct {
	Auth    *AuthHandler
	Request *RequestHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(services.Auth),
		Request: NewRequestHandler(services.Request),
	}
}
