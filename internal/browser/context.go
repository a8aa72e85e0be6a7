// File: internal/browser/context.go
package browser

import (
	"context"
)

// CombineContext creates a new context derived from ctx1 that is canceled when
// either ctx1 or ctx2 is canceled. It inherits values from ctx1, which matters
// for chromedp operations: ctx1 carries the CDP target information while ctx2
// carries the caller's operational deadline.
func CombineContext(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	combinedCtx, cancel := context.WithCancel(ctx1)

	go func() {
		select {
		case <-ctx2.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	return combinedCtx, cancel
}
