package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/AlissonS47/backend-assessment/internal/config"
	"github.com/AlissonS47/backend-assessment/internal/domain"
)

type EmailService interface {
	SendRequestResultEmail(ctx context.Context, toEmail, username string, status domain.RequestStatus) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) SendRequestResultEmail(ctx context.Context, toEmail, username string, status domain.RequestStatus) error {
	subject := "Result of your request"

	var outcome string
	if status == domain.StatusRejected {
		outcome = "Sorry, your request was rejected"
	} else {
		outcome = "Congratulations, your request has been approved!"
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Result of your request</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb;">

	<div style="background-color: #1f2937; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0; font-size: 28px;">
			Request Review
		</h1>
	</div>

	<div style="background-color: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">

		<h2 style="color: #111827; margin-top: 0;">
			Hello, %s!
		</h2>

		<p>
			Your request has been reviewed by our team.
		</p>

		<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<strong>%s</strong>
		</div>

		<p style="font-size: 14px; color: #6b7280;">
			If you have any questions, feel free to contact our support team.
		</p>
	</div>

</body>
</html>`, username, outcome)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Request Review <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
