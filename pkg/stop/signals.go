// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stop turns OS termination signals into context cancellation.
package stop

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// NotifyContext returns a context canceled on the first SIGINT or SIGTERM.
// The method running at that moment completes; no further method starts.
func NotifyContext(ctx context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancelCause(ctx)
	graceful := make(chan os.Signal, 1)
	signal.Notify(graceful, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(graceful)

		select {
		case sig := <-graceful:
			logger.Info("received signal, stopping after the current method", zap.Stringer("signal", sig))
			cancel(&SignalError{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}

type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return "interrupted by " + e.Signal.String()
}
