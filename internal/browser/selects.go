// File: internal/browser/selects.go
package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// selectResult is what the in-page select snippet reports back.
type selectResult struct {
	Found    bool   `json:"found"`
	Selected string `json:"selected"`
}

// SelectByIndex selects the option at the given zero-based index in a
// <select> element and fires input/change events.
func (s *Session) SelectByIndex(ctx context.Context, sel string, index int) error {
	s.logger.Debug("Selecting option by index.", zap.String("selector", sel), zap.Int("index", index))
	return s.selectOption(ctx, sel, fmt.Sprintf("index %d", index), fmt.Sprintf(`
	const idx = %d;
	if (idx < 0 || idx >= el.options.length) { return {found: false}; }
	el.selectedIndex = idx;`, index))
}

// SelectByValue selects the option whose value attribute equals value.
func (s *Session) SelectByValue(ctx context.Context, sel, value string) error {
	s.logger.Debug("Selecting option by value.", zap.String("selector", sel), zap.String("value", value))
	return s.selectOption(ctx, sel, fmt.Sprintf("value %q", value), fmt.Sprintf(`
	const want = %s;
	let idx = -1;
	for (let i = 0; i < el.options.length; i++) {
		if (el.options[i].value === want) { idx = i; break; }
	}
	if (idx === -1) { return {found: false}; }
	el.selectedIndex = idx;`, jsArg(value)))
}

// SelectByVisibleText selects the option whose rendered text equals text.
func (s *Session) SelectByVisibleText(ctx context.Context, sel, text string) error {
	s.logger.Debug("Selecting option by visible text.", zap.String("selector", sel), zap.String("text", text))
	return s.selectOption(ctx, sel, fmt.Sprintf("visible text %q", text), fmt.Sprintf(`
	const want = %s;
	let idx = -1;
	for (let i = 0; i < el.options.length; i++) {
		if ((el.options[i].textContent || '').trim() === want) { idx = i; break; }
	}
	if (idx === -1) { return {found: false}; }
	el.selectedIndex = idx;`, jsArg(text)))
}

// selectOption runs a picker snippet against the <select> element. The
// snippet either returns {found:false} or assigns el.selectedIndex; this
// wrapper then fires the events real user selection would fire.
func (s *Session) selectOption(ctx context.Context, sel, desc, picker string) error {
	script := findScript(sel, fmt.Sprintf(`
	if (!el) { throw new Error('select element not found: ' + sel); }
	if (el.tagName !== 'SELECT') { throw new Error('element is not a select: ' + sel); }
	%s
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));
	return {found: true, selected: el.value};`, picker))

	var res selectResult
	if err := s.evaluate(ctx, script, &res); err != nil {
		return fmt.Errorf("failed to select option in %q: %w", sel, err)
	}
	if !res.Found {
		return fmt.Errorf("no option with %s in %q: %w", desc, sel, ErrOptionNotFound)
	}
	return nil
}
