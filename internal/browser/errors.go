// File: internal/browser/errors.go
package browser

import "errors"

// Sentinel errors returned by the helper layer. Callers are expected to test
// them with errors.Is; nothing is retried or suppressed internally.
var (
	// ErrWaitTimeout indicates a wait predicate never became true within the
	// allotted time.
	ErrWaitTimeout = errors.New("wait timed out")

	// ErrNoSuchWindow indicates no open window/tab matched the requested
	// title or URL fragment.
	ErrNoSuchWindow = errors.New("no matching window")

	// ErrNoDialog indicates an alert operation was attempted while no
	// JavaScript dialog is open.
	ErrNoDialog = errors.New("no dialog open")

	// ErrOptionNotFound indicates a dropdown selection did not match any
	// option of the target element.
	ErrOptionNotFound = errors.New("option not found")

	// ErrNotInteractable indicates an element was located but cannot receive
	// the requested gesture (zero-size geometry, detached, or disabled).
	ErrNotInteractable = errors.New("element not interactable")
)
