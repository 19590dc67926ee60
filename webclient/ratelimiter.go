// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package webclient

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// Simple bucket rate limiter (client side).
// The limit is stored in the upper 32 bits of limitCounter, the counter in the lower 32 bits.
type RateLimiter struct {
	limitCounter uint64 // Use atomic accessor
	interval     int64  // Use atomic accessor
	startTime    int64  // Use atomic accessor
}

const MinWaitTime = time.Millisecond * 250

// Upper bound for waiting on a Retry-After header.
const MaxRetryAfter = time.Second * 30

// Create a rate limiter which does not limit anything.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// Create a rate limiter allowing limit requests per interval. A zero limit means unlimited.
// The interval starts with the first call to HandleManualTimer.
func NewManualRateLimiter(interval time.Duration, limit uint32) *RateLimiter {
	return &RateLimiter{
		limitCounter: uint64(limit) << 32,
		interval:     int64(interval),
	}
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		limitCounter := atomic.LoadUint64(&l.limitCounter)
		limit := limitCounter >> 32
		if limit == 0 {
			return nil // no limitation
		}
		counter := limitCounter & 0xffffffff

		interval := atomic.LoadInt64(&l.interval)
		startTime := atomic.LoadInt64(&l.startTime)
		if interval > 0 && startTime > 0 {
			endTime := time.UnixMilli(startTime).Add(time.Duration(interval))
			// reset counter after time interval
			if time.Since(endTime) > 0 {
				if !atomic.CompareAndSwapInt64(&l.startTime, startTime, time.Now().UnixMilli()) {
					continue
				}
				// Subtract instead of setting to zero in order to avoid race conditions.
				atomic.AddUint64(&l.limitCounter, -counter)
				limitCounter -= counter
				counter = 0
			}
		}
		if counter < limit {
			if atomic.CompareAndSwapUint64(&l.limitCounter, limitCounter, limitCounter+1) {
				return nil
			}
			continue
		}
		// too many requests, poll every MinWaitTime
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(MinWaitTime):
		}
	}
}

// Return the remaining count or max int if not limited.
func (l *RateLimiter) Remaining() int {
	limitCounter := atomic.LoadUint64(&l.limitCounter)
	limit := limitCounter >> 32
	if limit == 0 {
		return math.MaxInt
	}
	counter := limitCounter & 0xffffffff
	return max(int(limit)-int(counter), 0)
}

// HandleResponse starts the interval timer and waits if the server complains about
// too many requests. In this case, the request should be repeated.
func (l *RateLimiter) HandleResponse(ctx context.Context, resp *http.Response) (retry bool, err error) {
	l.HandleManualTimer()
	if resp.StatusCode != http.StatusTooManyRequests {
		return false, nil
	}
	wait := MinWaitTime
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
		wait = min(time.Duration(seconds)*time.Second, MaxRetryAfter)
	}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(wait):
		return true, nil
	}
}

func (l *RateLimiter) HandleManualTimer() {
	if atomic.LoadInt64(&l.interval) > 0 && atomic.LoadInt64(&l.startTime) == 0 {
		// Initialize start time after first call.
		atomic.CompareAndSwapInt64(&l.startTime, 0, time.Now().UnixMilli())
	}
}
