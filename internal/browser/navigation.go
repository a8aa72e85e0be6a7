// File: internal/browser/navigation.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Navigate loads the URL in the active tab and waits for the document body
// to be ready. The navigation timeout comes from configuration.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))

	navTimeout := s.cfg.Network.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = 90 * time.Second
	}
	navCtx, cancel := context.WithTimeout(ctx, navTimeout)
	defer cancel()

	if err := s.runActions(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		if navCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("navigation to %q timed out after %s: %w", url, navTimeout, err)
		}
		return fmt.Errorf("navigation to %q failed: %w", url, err)
	}

	if wait := s.cfg.Network.PostLoadWait; wait > 0 {
		if err := s.runActions(ctx, chromedp.Sleep(wait)); err != nil {
			return err
		}
	}
	return nil
}

// NavigateBack goes back one entry in the tab's history.
func (s *Session) NavigateBack(ctx context.Context) error {
	return s.runActions(ctx, chromedp.NavigateBack())
}

// NavigateForward goes forward one entry in the tab's history.
func (s *Session) NavigateForward(ctx context.Context) error {
	return s.runActions(ctx, chromedp.NavigateForward())
}

// Refresh reloads the current page.
func (s *Session) Refresh(ctx context.Context) error {
	return s.runActions(ctx, chromedp.Reload())
}

// Title returns the active tab's document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.runActions(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

// CurrentURL returns the active tab's location.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := s.runActions(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return url, nil
}

// MaximizeWindow maximizes the OS window hosting the active tab.
func (s *Session) MaximizeWindow(ctx context.Context) error {
	return s.setWindowState(ctx, browser.WindowStateMaximized)
}

// FullscreenWindow makes the OS window hosting the active tab fullscreen.
func (s *Session) FullscreenWindow(ctx context.Context) error {
	return s.setWindowState(ctx, browser.WindowStateFullscreen)
}

func (s *Session) setWindowState(ctx context.Context, state browser.WindowState) error {
	return s.runActions(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		windowID, _, err := browser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve browser window: %w", err)
		}
		// A window cannot transition directly between non-normal states.
		if err := browser.SetWindowBounds(windowID, &browser.Bounds{WindowState: browser.WindowStateNormal}).Do(ctx); err != nil {
			return fmt.Errorf("failed to reset window state: %w", err)
		}
		if err := browser.SetWindowBounds(windowID, &browser.Bounds{WindowState: state}).Do(ctx); err != nil {
			return fmt.Errorf("failed to set window state %s: %w", state, err)
		}
		return nil
	}))
}
