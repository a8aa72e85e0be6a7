// File: internal/browser/alerts.go
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// takeDialog removes and returns the pending dialog, along with any prompt
// text staged by SendTextToAlert.
func (s *Session) takeDialog() (*pendingDialog, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return nil, "", ErrNoDialog
	}
	d := s.dialog
	text := s.promptText
	s.dialog = nil
	s.promptText = ""
	return d, text, nil
}

// peekDialog returns the pending dialog without consuming it.
func (s *Session) peekDialog() (*pendingDialog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return nil, ErrNoDialog
	}
	return s.dialog, nil
}

// handleDialog answers the pending dialog. For prompts, staged text (if any)
// is submitted on accept.
func (s *Session) handleDialog(ctx context.Context, accept bool) error {
	d, text, err := s.takeDialog()
	if err != nil {
		return err
	}

	action := page.HandleJavaScriptDialog(accept)
	if accept && d.kind == page.DialogTypePrompt && text != "" {
		action = action.WithPromptText(text)
	}

	runCtx, cancel := CombineContext(d.tab.ctx, ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return action.Do(ctx)
	})); err != nil {
		return fmt.Errorf("failed to handle dialog: %w", err)
	}

	s.logger.Debug("Handled JavaScript dialog.",
		zap.String("type", string(d.kind)), zap.Bool("accepted", accept))
	return nil
}

// AcceptAlert accepts the pending JavaScript dialog. If text was staged with
// SendTextToAlert and the dialog is a prompt, that text is submitted.
// Returns ErrNoDialog when nothing is open.
func (s *Session) AcceptAlert(ctx context.Context) error {
	return s.handleDialog(ctx, true)
}

// DismissAlert dismisses the pending JavaScript dialog.
// Returns ErrNoDialog when nothing is open.
func (s *Session) DismissAlert(ctx context.Context) error {
	return s.handleDialog(ctx, false)
}

// AlertText returns the message of the pending dialog without closing it.
func (s *Session) AlertText(ctx context.Context) (string, error) {
	d, err := s.peekDialog()
	if err != nil {
		return "", err
	}
	return d.message, nil
}

// SendTextToAlert stages text for the pending prompt dialog. CDP only
// delivers prompt text when the dialog is answered, so the text is held until
// AcceptAlert runs.
func (s *Session) SendTextToAlert(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return ErrNoDialog
	}
	if s.dialog.kind != page.DialogTypePrompt {
		return fmt.Errorf("dialog of type %s does not accept text: %w", s.dialog.kind, ErrNoDialog)
	}
	s.promptText = text
	return nil
}
