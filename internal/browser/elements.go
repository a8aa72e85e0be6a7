// File: internal/browser/elements.go
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

// Click clicks the element matching sel.
func (s *Session) Click(ctx context.Context, sel string) error {
	s.logger.Debug("Clicking.", zap.String("selector", sel))
	if err := s.runActions(ctx, chromedp.Click(sel, queryOption(sel))); err != nil {
		return fmt.Errorf("failed to click %q: %w", sel, err)
	}
	return nil
}

// WaitAndClick waits until the element is clickable, then clicks it.
func (s *Session) WaitAndClick(ctx context.Context, sel string, opts WaitOptions) error {
	if err := s.WaitClickable(ctx, sel, opts); err != nil {
		return err
	}
	return s.Click(ctx, sel)
}

// SendKeys types text into the element, appending to any existing content.
func (s *Session) SendKeys(ctx context.Context, sel, text string) error {
	s.logger.Debug("Sending keys.", zap.String("selector", sel))
	if err := s.runActions(ctx, chromedp.SendKeys(sel, text, queryOption(sel))); err != nil {
		return fmt.Errorf("failed to send keys to %q: %w", sel, err)
	}
	return nil
}

// ClearAndSendKeys empties the element's current value before typing text.
func (s *Session) ClearAndSendKeys(ctx context.Context, sel, text string) error {
	s.logger.Debug("Clearing and sending keys.", zap.String("selector", sel))
	if err := s.runActions(ctx,
		chromedp.Clear(sel, queryOption(sel)),
		chromedp.SendKeys(sel, text, queryOption(sel)),
	); err != nil {
		return fmt.Errorf("failed to replace text in %q: %w", sel, err)
	}
	return nil
}

// Text returns the element's visible text content, trimmed.
func (s *Session) Text(ctx context.Context, sel string) (string, error) {
	script := findScript(sel, `
	if (!el) { throw new Error('element not found: ' + sel); }
	return (el.innerText !== undefined ? el.innerText : el.textContent || '').trim();`)
	var text string
	if err := s.evaluate(ctx, script, &text); err != nil {
		return "", fmt.Errorf("failed to read text of %q: %w", sel, err)
	}
	return text, nil
}

// IsChecked reports whether a checkbox or radio button is currently checked.
func (s *Session) IsChecked(ctx context.Context, sel string) (bool, error) {
	script := findScript(sel, `
	if (!el) { throw new Error('element not found: ' + sel); }
	return el.checked === true;`)
	checked, err := s.evalBool(ctx, script)
	if err != nil {
		return false, fmt.Errorf("failed to read checked state of %q: %w", sel, err)
	}
	return checked, nil
}

// CheckCheckbox ensures the checkbox is checked. Already-checked boxes are
// left alone, so calling this twice is safe.
func (s *Session) CheckCheckbox(ctx context.Context, sel string) error {
	return s.setCheckbox(ctx, sel, true)
}

// UncheckCheckbox ensures the checkbox is unchecked.
func (s *Session) UncheckCheckbox(ctx context.Context, sel string) error {
	return s.setCheckbox(ctx, sel, false)
}

func (s *Session) setCheckbox(ctx context.Context, sel string, want bool) error {
	checked, err := s.IsChecked(ctx, sel)
	if err != nil {
		return err
	}
	if checked == want {
		return nil
	}
	s.logger.Debug("Toggling checkbox.", zap.String("selector", sel), zap.Bool("checked", want))
	return s.Click(ctx, sel)
}

// SelectRadio ensures the radio button is selected. Clicking an already
// selected radio button is skipped.
func (s *Session) SelectRadio(ctx context.Context, sel string) error {
	checked, err := s.IsChecked(ctx, sel)
	if err != nil {
		return err
	}
	if checked {
		return nil
	}
	s.logger.Debug("Selecting radio button.", zap.String("selector", sel))
	return s.Click(ctx, sel)
}

// PressEnter sends the Enter key to the currently focused element.
func (s *Session) PressEnter(ctx context.Context) error {
	return s.pressKey(ctx, kb.Enter)
}

// PressEscape sends the Escape key to the currently focused element.
func (s *Session) PressEscape(ctx context.Context) error {
	return s.pressKey(ctx, kb.Escape)
}

// PressTab sends the Tab key to the currently focused element.
func (s *Session) PressTab(ctx context.Context) error {
	return s.pressKey(ctx, kb.Tab)
}

func (s *Session) pressKey(ctx context.Context, key string) error {
	if err := s.runActions(ctx, chromedp.KeyEvent(key)); err != nil {
		return fmt.Errorf("failed to press key: %w", err)
	}
	return nil
}

// SelectAll focuses the element and sends Ctrl+A.
func (s *Session) SelectAll(ctx context.Context, sel string) error {
	return s.pressCtrlCombo(ctx, sel, "a")
}

// Copy focuses the element and sends Ctrl+C.
func (s *Session) Copy(ctx context.Context, sel string) error {
	return s.pressCtrlCombo(ctx, sel, "c")
}

// Paste focuses the element and sends Ctrl+V.
func (s *Session) Paste(ctx context.Context, sel string) error {
	return s.pressCtrlCombo(ctx, sel, "v")
}

func (s *Session) pressCtrlCombo(ctx context.Context, sel, key string) error {
	s.logger.Debug("Sending control combo.", zap.String("selector", sel), zap.String("key", key))
	if err := s.runActions(ctx,
		chromedp.Focus(sel, queryOption(sel)),
		chromedp.KeyEvent(key, chromedp.KeyModifiers(input.ModifierCtrl)),
	); err != nil {
		return fmt.Errorf("failed to send ctrl+%s to %q: %w", key, sel, err)
	}
	return nil
}
