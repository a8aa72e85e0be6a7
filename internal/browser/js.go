// File: internal/browser/js.go
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsArg encodes a Go value as a JavaScript literal for safe embedding in a
// generated snippet.
func jsArg(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only unmarshalable types end up here; the facade passes strings and
		// numbers exclusively.
		return "null"
	}
	return string(data)
}

// isXPath reports whether a selector should be treated as an XPath
// expression rather than a CSS selector.
func isXPath(sel string) bool {
	return strings.HasPrefix(sel, "/") || strings.HasPrefix(sel, "(") || strings.HasPrefix(sel, "./")
}

// queryOption maps a selector to the matching chromedp query strategy.
func queryOption(sel string) chromedp.QueryOption {
	if isXPath(sel) {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// findScript builds an IIFE that binds `el` to the element matching sel
// (CSS or XPath) and then runs body. The body must return a value.
func findScript(sel, body string) string {
	return fmt.Sprintf(`(function() {
	const sel = %s;
	let el = null;
	if (sel.startsWith('/') || sel.startsWith('(') || sel.startsWith('./')) {
		el = document.evaluate(sel, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	} else {
		el = document.querySelector(sel);
	}
	%s
})()`, jsArg(sel), body)
}

// evaluate runs a script in the active tab and decodes its JSON-serializable
// result into out. Pass nil to discard the result.
func (s *Session) evaluate(ctx context.Context, script string, out interface{}) error {
	if out == nil {
		return s.runActions(ctx, chromedp.Evaluate(script, nil))
	}

	var raw []byte
	if err := s.runActions(ctx, chromedp.Evaluate(script, &raw)); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode script result: %w", err)
	}
	return nil
}

// evalBool runs a script expected to produce a boolean.
func (s *Session) evalBool(ctx context.Context, script string) (bool, error) {
	var res bool
	if err := s.evaluate(ctx, script, &res); err != nil {
		return false, err
	}
	return res, nil
}

// ExecuteScript evaluates an arbitrary script string against the active tab
// and decodes its JSON-serializable result into out (which may be nil).
func (s *Session) ExecuteScript(ctx context.Context, script string, out interface{}) error {
	s.logger.Debug("Executing script.")
	if err := s.evaluate(ctx, script, out); err != nil {
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}

// JSClick clicks an element through the DOM instead of synthetic input
// events. Useful when an element is obscured by overlays.
func (s *Session) JSClick(ctx context.Context, sel string) error {
	script := findScript(sel, `
	if (!el) { throw new Error('element not found: ' + sel); }
	el.click();
	return true;`)
	return s.evaluate(ctx, script, nil)
}

// JSSetValue assigns an input's value directly and fires input/change events.
func (s *Session) JSSetValue(ctx context.Context, sel, value string) error {
	script := findScript(sel, fmt.Sprintf(`
	if (!el) { throw new Error('element not found: ' + sel); }
	el.value = %s;
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));
	return true;`, jsArg(value)))
	return s.evaluate(ctx, script, nil)
}

// JSGetValue reads an input's current value.
func (s *Session) JSGetValue(ctx context.Context, sel string) (string, error) {
	script := findScript(sel, `
	if (!el) { throw new Error('element not found: ' + sel); }
	return el.value;`)
	var value string
	if err := s.evaluate(ctx, script, &value); err != nil {
		return "", err
	}
	return value, nil
}

// ScrollToTop scrolls the page to the very top.
func (s *Session) ScrollToTop(ctx context.Context) error {
	return s.evaluate(ctx, `window.scrollTo(0, 0)`, nil)
}

// ScrollToBottom scrolls the page to the very bottom.
func (s *Session) ScrollToBottom(ctx context.Context) error {
	return s.evaluate(ctx, `window.scrollTo(0, document.body.scrollHeight)`, nil)
}

// ScrollBy scrolls the page by the given offsets.
func (s *Session) ScrollBy(ctx context.Context, x, y int) error {
	return s.evaluate(ctx, fmt.Sprintf(`window.scrollBy(%d, %d)`, x, y), nil)
}

// ScrollIntoView brings the element into the viewport.
func (s *Session) ScrollIntoView(ctx context.Context, sel string) error {
	return s.runActions(ctx, chromedp.ScrollIntoView(sel, queryOption(sel)))
}
