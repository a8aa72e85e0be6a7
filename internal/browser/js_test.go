// File: internal/browser/js_test.go
package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSArgEscapesStrings(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
	}{
		{"plain string", "hello", `"hello"`},
		{"embedded quotes", `say "hi"`, `"say \"hi\""`},
		{"single quotes pass through", "it's", `"it's"`},
		{"newline", "a\nb", `"a\nb"`},
		{"backslash", `c:\path`, `"c:\\path"`},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, jsArg(tc.in))
		})
	}
}

func TestIsXPath(t *testing.T) {
	cases := []struct {
		sel  string
		want bool
	}{
		{"//div[@id='x']", true},
		{"/html/body", true},
		{"(//a)[2]", true},
		{"./span", true},
		{"#login", false},
		{"input[name='q']", false},
		{"div > p", false},
		{".menu-item", false},
	}

	for _, tc := range cases {
		t.Run(tc.sel, func(t *testing.T) {
			assert.Equal(t, tc.want, isXPath(tc.sel))
		})
	}
}

func TestFindScriptEmbedsSelectorSafely(t *testing.T) {
	script := findScript(`img[src="x.png"]`, `return el !== null;`)

	// The selector must appear JSON-encoded, not raw, so quotes inside it
	// cannot break out of the string literal.
	assert.Contains(t, script, `"img[src=\"x.png\"]"`)
	assert.Contains(t, script, "return el !== null;")
	assert.Contains(t, script, "document.querySelector")
	assert.Contains(t, script, "document.evaluate")
}

func TestVisibleScriptChecksGeometryAndStyle(t *testing.T) {
	script := visibleScript("#spinner")

	assert.Contains(t, script, `"#spinner"`)
	assert.Contains(t, script, "getComputedStyle")
	assert.Contains(t, script, "getBoundingClientRect")
}
