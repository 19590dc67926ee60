// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package webclient

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

type RetryPolicy struct {
	MaxRetries int
	MinDelay   time.Duration
	MaxDelay   time.Duration
}

func NewRetryPolicy(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries: maxRetries,
		MinDelay:   250 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

// Run calls attempt until it succeeds, returns a permanent error or the retries are used up.
// attempt reports whether its error is worth another try.
func (p RetryPolicy) Run(ctx context.Context, attempt func() (retry bool, err error)) error {
	b := &backoff.Backoff{
		Min:    p.MinDelay,
		Max:    p.MaxDelay,
		Factor: 2,
	}
	for {
		retry, err := attempt()
		if err == nil || !retry || int(b.Attempt()) >= p.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
}
