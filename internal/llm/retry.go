package llm

import (
	"context"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/logger"
)

// withRetry runs fn, retrying errors accepted by retryable with the
// configured backoff.
func withRetry(ctx context.Context, cfg RetryConfig, provider string, retryable func(error) bool, fn func() error) error {
	if cfg.Attempts <= 1 {
		return fn()
	}

	delayType := retry.BackOffDelay
	if cfg.BackoffType == "fixed" {
		delayType = retry.FixedDelay
	}

	var originalErrors []error
	err := retry.Do(
		func() error {
			err := fn()
			if err != nil {
				originalErrors = append(originalErrors, err)
			}
			return err
		},
		retry.RetryIf(retryable),
		retry.Attempts(uint(cfg.Attempts)),
		retry.Delay(time.Duration(cfg.InitialDelay)*time.Millisecond),
		retry.MaxDelay(time.Duration(cfg.MaxDelay)*time.Millisecond),
		retry.DelayType(delayType),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).
				WithField("provider", provider).
				WithField("attempt", n+1).
				WithField("max_attempts", cfg.Attempts).
				Warn("retrying LLM call")
		}),
	)
	if err != nil && len(originalErrors) > 1 {
		return errors.Wrapf(err, "%s: %d attempts failed", provider, len(originalErrors))
	}
	return err
}

var retryablePatterns = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"temporary failure",
	"service unavailable",
	"internal error",
	"quota exceeded",
	"rate limit",
	"too many requests",
	"overloaded",
}

// isRetryableMessage is the fallback classification for errors that do not
// carry an HTTP status.
func isRetryableMessage(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range retryablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func isRetryableStatus(code int) bool {
	return code == 408 || code == 409 || code == 429 || code >= 500
}
