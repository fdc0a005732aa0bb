// SPDX-FileCopyrightText: 2025 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"context"
	"time"
)

// Timer wraps a periodic ticker and cancellation context
type Timer struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPeriodicTimer calls expired every d until the timer is stopped or
// parent is done. A non positive d returns a stopped timer.
func NewPeriodicTimer(parent context.Context, d time.Duration, expired func()) *Timer {
	ctx, cancel := context.WithCancel(parent)
	t := &Timer{cancel: cancel, done: make(chan struct{})}
	if d <= 0 {
		cancel()
		close(t.done)
		return t
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				expired()
			}
		}
	}()

	return t
}

// Stop cancels the timer and waits for a running callback to return.
func (t *Timer) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	<-t.done
}
