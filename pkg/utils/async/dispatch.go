package async

import (
	"context"

	"github.com/secmon-lab/aletheia/pkg/utils/errutil"
	"github.com/secmon-lab/aletheia/pkg/utils/logging"
)

// Dispatch runs a handler in a new goroutine detached from the request
// context, preserving the logger. Errors and panics are logged, never
// propagated: dispatched work is fire-and-forget and must not affect
// the caller's outcome.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}
