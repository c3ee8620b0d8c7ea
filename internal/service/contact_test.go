package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arslanca/portfolio/internal/ratelimit"
)

func TestContactService_RateLimit(t *testing.T) {
	t.Parallel()

	// No mailer configured: every attempt that passes the limiter fails
	// with a business-rule error, which is enough to tell the two apart.
	svc := &ContactService{Limiter: ratelimit.New()}
	ctx := t.Context()

	for i := 0; i < 3; i++ {
		err := svc.Send(ctx, "192.0.2.50", "visitor@example.com", "hi", "hello")
		assert.ErrorIs(t, err, ErrBusinessRule, "attempt %d should reach the mailer stage", i+1)
	}

	err := svc.Send(ctx, "192.0.2.50", "visitor@example.com", "hi", "hello")
	assert.ErrorIs(t, err, ErrRateLimited, "the 4th message within the hour is refused")

	err = svc.Send(ctx, "192.0.2.51", "visitor@example.com", "hi", "hello")
	assert.ErrorIs(t, err, ErrBusinessRule, "another address has its own budget")
}
