package service

import (
	"context"
	"fmt"

	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/mail"
	"github.com/arslanca/portfolio/internal/ratelimit"
)

type ContactService struct {
	Mailer  *mail.Mailer
	Limiter *ratelimit.Limiter
}

func (s *ContactService) Send(ctx context.Context, clientAddr, senderEmail, subject, message string) error {
	l := logging.FromContext(ctx).With("svc", "contact.send")

	if !s.Limiter.Allow(clientAddr) {
		l.Warn("contact_rate_limited", "status", 429, "addr", clientAddr)
		return ErrRateLimited
	}
	if s.Mailer == nil {
		return fmt.Errorf("%w: mail delivery is not configured", ErrBusinessRule)
	}
	if err := s.Mailer.SendContact(senderEmail, subject, message); err != nil {
		l.Error("contact_send_failed", "error", err)
		return fmt.Errorf("%w: the mail service is temporarily unavailable", ErrBusinessRule)
	}
	l.Info("contact_sent")
	return nil
}
