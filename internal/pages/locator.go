// File: internal/pages/locator.go

// Package pages holds declarative page objects for the CRM under test. Each
// page lists its elements as locators; the browser session consumes the
// lowered selector strings.
package pages

import (
	"fmt"
	"strings"
)

// Strategy identifies how a locator's value should be interpreted.
type Strategy string

const (
	ByID       Strategy = "id"
	ByCSS      Strategy = "css"
	ByXPath    Strategy = "xpath"
	ByName     Strategy = "name"
	ByLinkText Strategy = "link_text"
)

// Locator pairs a lookup strategy with its value.
type Locator struct {
	Strategy Strategy
	Value    string
}

// ID locates by element id attribute.
func ID(v string) Locator { return Locator{Strategy: ByID, Value: v} }

// CSS locates by CSS selector.
func CSS(v string) Locator { return Locator{Strategy: ByCSS, Value: v} }

// XPath locates by XPath expression.
func XPath(v string) Locator { return Locator{Strategy: ByXPath, Value: v} }

// Name locates by element name attribute.
func Name(v string) Locator { return Locator{Strategy: ByName, Value: v} }

// LinkText locates an anchor by its exact rendered text.
func LinkText(v string) Locator { return Locator{Strategy: ByLinkText, Value: v} }

// Query lowers the locator to a selector string the browser session
// understands: XPath expressions keep their leading "/" or "(", everything
// else becomes CSS.
func (l Locator) Query() string {
	switch l.Strategy {
	case ByID:
		if cssSafeID(l.Value) {
			return "#" + l.Value
		}
		// Ids with spaces or punctuation (the CRM uses "dtlview_Organization
		// Name") cannot appear in a CSS id selector.
		return fmt.Sprintf("//*[@id=%s]", xpathLiteral(l.Value))
	case ByName:
		return fmt.Sprintf("[name=%q]", l.Value)
	case ByLinkText:
		return fmt.Sprintf("//a[normalize-space(.)=%s]", xpathLiteral(l.Value))
	case ByXPath, ByCSS:
		return l.Value
	default:
		return l.Value
	}
}

// String implements fmt.Stringer for log output.
func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Value)
}

// cssSafeID reports whether v can be used verbatim after "#".
func cssSafeID(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// xpathLiteral quotes v as an XPath string literal. XPath 1.0 has no escape
// sequences, so values containing both quote kinds need concat().
func xpathLiteral(v string) string {
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	if !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}
	parts := strings.Split(v, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
