// File: internal/browser/windows.go
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// WindowHandles returns the handles of all open windows/tabs, in the order
// the browser reports them. That order is implementation-defined; callers
// must not rely on it.
func (s *Session) WindowHandles(ctx context.Context) ([]target.ID, error) {
	t := s.activeTab()
	runCtx, cancel := CombineContext(t.ctx, ctx)
	defer cancel()

	infos, err := chromedp.Targets(runCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	handles := make([]target.ID, 0, len(infos))
	for _, info := range infos {
		if info.Type != "page" {
			continue
		}
		// Extension background pages and devtools report as pages too.
		if strings.HasPrefix(info.URL, "devtools://") || strings.HasPrefix(info.URL, "chrome-extension://") {
			continue
		}
		handles = append(handles, info.TargetID)
	}
	return handles, nil
}

// SwitchToWindow makes the given window the session's active context and
// brings it to the foreground.
func (s *Session) SwitchToWindow(ctx context.Context, handle target.ID) error {
	t, err := s.attach(handle)
	if err != nil {
		return err
	}

	runCtx, cancel := CombineContext(t.ctx, ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.BringToFront().Do(ctx)
	})); err != nil {
		return fmt.Errorf("failed to activate window %s: %w", handle, err)
	}

	s.mu.Lock()
	s.active = t
	s.mu.Unlock()

	s.logger.Debug("Switched active window.", zap.String("window", string(handle)))
	return nil
}

// SwitchToWindowByTitle scans the open windows in enumeration order and
// switches to the first one whose title contains fragment. When nothing
// matches, the previously active window is restored and ErrNoSuchWindow is
// returned; the caller is never left on an arbitrary window.
func (s *Session) SwitchToWindowByTitle(ctx context.Context, fragment string) error {
	return s.switchToWindowBy(ctx, fmt.Sprintf("title containing %q", fragment), func(ctx context.Context) (bool, error) {
		title, err := s.Title(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(title, fragment), nil
	})
}

// SwitchToWindowByURL is SwitchToWindowByTitle for the window's current URL.
func (s *Session) SwitchToWindowByURL(ctx context.Context, fragment string) error {
	return s.switchToWindowBy(ctx, fmt.Sprintf("URL containing %q", fragment), func(ctx context.Context) (bool, error) {
		url, err := s.CurrentURL(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(url, fragment), nil
	})
}

// switchToWindowBy switches into each open window and tests the predicate
// against the then-active window, stopping at the first match.
func (s *Session) switchToWindowBy(ctx context.Context, desc string, matches func(ctx context.Context) (bool, error)) error {
	origin := s.ActiveWindow()

	handles, err := s.WindowHandles(ctx)
	if err != nil {
		return err
	}

	for _, handle := range handles {
		if err := s.SwitchToWindow(ctx, handle); err != nil {
			return err
		}
		ok, err := matches(ctx)
		if err != nil {
			// Leave the session where it started, not on the failing candidate.
			inspectErr := fmt.Errorf("failed to inspect window %s: %w", handle, err)
			if rerr := s.SwitchToWindow(ctx, origin); rerr != nil {
				return fmt.Errorf("%w (restoring the original window also failed: %v)", inspectErr, rerr)
			}
			return inspectErr
		}
		if ok {
			return nil
		}
	}

	// No match: restore the original window before reporting failure.
	if err := s.SwitchToWindow(ctx, origin); err != nil {
		return fmt.Errorf("no window with %s, and restoring the original window failed: %w", desc, err)
	}
	return fmt.Errorf("no window with %s: %w", desc, ErrNoSuchWindow)
}

// NewWindow opens a blank tab, switches to it, and returns its handle.
func (s *Session) NewWindow(ctx context.Context) (target.ID, error) {
	parent := s.activeTab()

	tabCtx, tabCancel := chromedp.NewContext(parent.ctx)
	if err := chromedp.Run(tabCtx, chromedp.Navigate("about:blank")); err != nil {
		tabCancel()
		return "", fmt.Errorf("failed to open new window: %w", err)
	}

	c := chromedp.FromContext(tabCtx)
	if c == nil || c.Target == nil {
		tabCancel()
		return "", fmt.Errorf("new window has no target information")
	}

	t := &tab{id: c.Target.TargetID, ctx: tabCtx, cancel: tabCancel}
	s.watchDialogs(t)

	s.mu.Lock()
	s.tabs[t.id] = t
	s.active = t
	s.mu.Unlock()

	s.logger.Debug("Opened new window.", zap.String("window", string(t.id)))
	return t.id, nil
}

// CloseWindow closes the given window. Closing the active window leaves the
// session without an active context; switch to another window first.
func (s *Session) CloseWindow(ctx context.Context, handle target.ID) error {
	t, err := s.attach(handle)
	if err != nil {
		return err
	}

	runCtx, cancel := CombineContext(t.ctx, ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Close().Do(ctx)
	})); err != nil {
		return fmt.Errorf("failed to close window %s: %w", handle, err)
	}

	s.detachTab(handle)
	return nil
}

// CloseOtherWindows closes every window except parent and switches back to
// parent, mirroring the teardown between test cases that open popups.
func (s *Session) CloseOtherWindows(ctx context.Context, parent target.ID) error {
	handles, err := s.WindowHandles(ctx)
	if err != nil {
		return err
	}

	for _, handle := range handles {
		if handle == parent {
			continue
		}
		if err := s.CloseWindow(ctx, handle); err != nil {
			return err
		}
	}

	return s.SwitchToWindow(ctx, parent)
}
