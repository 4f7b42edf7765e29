package linkstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jpillora/backoff"

	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/store"
)

// RetryPolicy bounds re-attempts of a failed write.
// Writes are whole-value overwrites, so repeating one is harmless.
type RetryPolicy struct {
	Retries int           // extra attempts after the first; 0 disables retry
	Min     time.Duration // first wait
	Max     time.Duration // wait cap
}

type writer struct {
	backend store.Backend
	logger  logger.Logger
	policy  RetryPolicy
	sleep   func(context.Context, time.Duration) error
}

func newWriter(backend store.Backend, log logger.Logger, policy RetryPolicy) *writer {
	if policy.Retries < 0 {
		policy.Retries = 0
	}
	if policy.Min <= 0 {
		policy.Min = 50 * time.Millisecond
	}
	if policy.Max < policy.Min {
		policy.Max = policy.Min
	}
	return &writer{
		backend: backend,
		logger:  log,
		policy:  policy,
		sleep:   sleepCtx,
	}
}

// write encodes v and stores it under key, retrying failed Sets per the policy.
func (w *writer) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	boff := &backoff.Backoff{
		Min:    w.policy.Min,
		Max:    w.policy.Max,
		Factor: 2,
	}

	for attempt := 0; ; attempt++ {
		err = w.backend.Set(ctx, key, data)
		if err == nil {
			if attempt > 0 {
				w.logger.Info("persisted after retry",
					logger.String("key", key),
					logger.Int("attempts", attempt+1))
			}
			return nil
		}
		if attempt >= w.policy.Retries {
			return fmt.Errorf("failed to persist %s after %d attempts: %w", key, attempt+1, err)
		}

		wait := boff.Duration()
		w.logger.Warn("persist failed, retrying",
			logger.String("key", key),
			logger.Int("attempt", attempt+1),
			logger.Duration("next_retry_in", wait),
			logger.Error(err))
		if serr := w.sleep(ctx, wait); serr != nil {
			return fmt.Errorf("failed to persist %s: %w (gave up: %v)", key, err, serr)
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// decode parses a persisted JSON payload, rejecting trailing data.
func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
