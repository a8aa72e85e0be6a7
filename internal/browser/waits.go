// File: internal/browser/waits.go
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WaitOptions parameterizes a single wait. Zero values are filled in from
// the configured defaults, so WaitOptions{} means "default timeout, default
// poll interval".
type WaitOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// Predicate is one poll of a wait condition. Errors are treated as transient
// while time remains: the element may simply not exist yet, or the page may
// be mid-navigation.
type Predicate func(ctx context.Context) (bool, error)

// normalizeWait fills unset options from configuration.
func (s *Session) normalizeWait(opts WaitOptions) WaitOptions {
	if opts.Timeout <= 0 {
		opts.Timeout = s.cfg.Wait.DefaultTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = s.cfg.Wait.PollInterval
	}
	return opts
}

// waitFor polls pred until it reports true, the timeout elapses, or ctx is
// canceled. The predicate is checked before the first sleep, so a condition
// that already holds returns immediately. On timeout the error wraps
// ErrWaitTimeout and names the condition.
func (s *Session) waitFor(ctx context.Context, desc string, opts WaitOptions, pred Predicate) error {
	opts = s.normalizeWait(opts)
	deadline := time.Now().Add(opts.Timeout)

	for {
		ok, err := pred(ctx)
		if err == nil && ok {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Debug("Wait predicate errored, retrying.", zap.String("condition", desc), zap.Error(err))
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("waiting for %s after %s: %w", desc, opts.Timeout, ErrWaitTimeout)
		}

		sleep := opts.PollInterval
		if sleep > remaining {
			sleep = remaining
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// visibleScript produces a predicate script: the element exists, occupies
// space, and is not hidden via CSS.
func visibleScript(sel string) string {
	return findScript(sel, `
	if (!el) { return false; }
	const style = window.getComputedStyle(el);
	if (style.display === 'none' || style.visibility === 'hidden' || style.opacity === '0') { return false; }
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;`)
}

// WaitVisible blocks until the element is displayed.
func (s *Session) WaitVisible(ctx context.Context, sel string, opts WaitOptions) error {
	script := visibleScript(sel)
	return s.waitFor(ctx, fmt.Sprintf("element %q visible", sel), opts, func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, script)
	})
}

// WaitClickable blocks until the element is displayed and enabled.
func (s *Session) WaitClickable(ctx context.Context, sel string, opts WaitOptions) error {
	script := findScript(sel, `
	if (!el || el.disabled) { return false; }
	const style = window.getComputedStyle(el);
	if (style.display === 'none' || style.visibility === 'hidden' || style.pointerEvents === 'none') { return false; }
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;`)
	return s.waitFor(ctx, fmt.Sprintf("element %q clickable", sel), opts, func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, script)
	})
}

// WaitInvisible blocks until the element is absent or hidden.
func (s *Session) WaitInvisible(ctx context.Context, sel string, opts WaitOptions) error {
	script := visibleScript(sel)
	return s.waitFor(ctx, fmt.Sprintf("element %q invisible", sel), opts, func(ctx context.Context) (bool, error) {
		visible, err := s.evalBool(ctx, script)
		if err != nil {
			return false, err
		}
		return !visible, nil
	})
}

// WaitText blocks until the element's text content contains text.
func (s *Session) WaitText(ctx context.Context, sel, text string, opts WaitOptions) error {
	script := findScript(sel, fmt.Sprintf(`
	if (!el) { return false; }
	return (el.textContent || '').includes(%s);`, jsArg(text)))
	return s.waitFor(ctx, fmt.Sprintf("text %q in element %q", text, sel), opts, func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, script)
	})
}

// WaitPresent blocks until the element exists in the DOM, whether or not it
// is displayed. This is the fluent presence poll: lookup failures while the
// page settles are ignored until the deadline.
func (s *Session) WaitPresent(ctx context.Context, sel string, opts WaitOptions) error {
	script := findScript(sel, `return el !== null;`)
	return s.waitFor(ctx, fmt.Sprintf("element %q present", sel), opts, func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, script)
	})
}

// WaitTitleContains blocks until the page title contains the fragment.
func (s *Session) WaitTitleContains(ctx context.Context, fragment string, opts WaitOptions) error {
	return s.waitFor(ctx, fmt.Sprintf("title containing %q", fragment), opts, func(ctx context.Context) (bool, error) {
		title, err := s.Title(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(title, fragment), nil
	})
}

// WaitURLContains blocks until the current URL contains the fragment.
func (s *Session) WaitURLContains(ctx context.Context, fragment string, opts WaitOptions) error {
	return s.waitFor(ctx, fmt.Sprintf("URL containing %q", fragment), opts, func(ctx context.Context) (bool, error) {
		url, err := s.CurrentURL(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(url, fragment), nil
	})
}
