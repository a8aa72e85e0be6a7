// File: internal/browser/actions.go
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// point is a viewport coordinate.
type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// mouseDispatchFunc sends one raw mouse event to the page.
type mouseDispatchFunc func(ctx context.Context, typ input.MouseType, x, y float64, opts ...chromedp.MouseOption) error

// elementGeometry is the bounding box reported by the page.
type elementGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// elementCenter scrolls the element into view and returns the viewport
// coordinates of its center.
func (s *Session) elementCenter(ctx context.Context, sel string) (point, error) {
	if err := s.runActions(ctx, chromedp.ScrollIntoView(sel, queryOption(sel))); err != nil {
		return point{}, fmt.Errorf("failed to scroll %q into view: %w", sel, err)
	}

	script := findScript(sel, `
	if (!el) { return null; }
	const r = el.getBoundingClientRect();
	return {x: r.left + r.width / 2, y: r.top + r.height / 2, w: r.width, h: r.height};`)

	var geo *elementGeometry
	if err := s.evaluate(ctx, script, &geo); err != nil {
		return point{}, fmt.Errorf("failed to measure element %q: %w", sel, err)
	}
	if geo == nil {
		return point{}, fmt.Errorf("element %q not found", sel)
	}
	if geo.Width <= 0 || geo.Height <= 0 {
		return point{}, fmt.Errorf("element %q has zero-size geometry: %w", sel, ErrNotInteractable)
	}
	return point{X: geo.X, Y: geo.Y}, nil
}

// sendMouse hands one mouse event to the dispatch seam, or straight to the
// driver when no seam is installed.
func (s *Session) sendMouse(ctx context.Context, typ input.MouseType, x, y float64, opts ...chromedp.MouseOption) error {
	if s.mouseDispatch != nil {
		return s.mouseDispatch(ctx, typ, x, y, opts...)
	}
	return s.runActions(ctx, chromedp.MouseEvent(typ, x, y, opts...))
}

// mouseMove dispatches a pointer move and records the new cursor position.
func (s *Session) mouseMove(ctx context.Context, p point) error {
	if err := s.sendMouse(ctx, input.MouseMoved, p.X, p.Y); err != nil {
		return fmt.Errorf("pointer move failed: %w", err)
	}
	s.mu.Lock()
	s.lastX, s.lastY = p.X, p.Y
	s.mu.Unlock()
	return nil
}

// mousePress dispatches a button press at the current cursor position.
func (s *Session) mousePress(ctx context.Context, button string, clickCount int64) error {
	s.mu.Lock()
	x, y := s.lastX, s.lastY
	s.mu.Unlock()

	err := s.sendMouse(ctx, input.MousePressed, x, y,
		chromedp.Button(button), chromedp.ClickCount(int(clickCount)))
	if err != nil {
		return fmt.Errorf("pointer press failed: %w", err)
	}
	return nil
}

// mouseRelease dispatches a button release at the current cursor position.
func (s *Session) mouseRelease(ctx context.Context, button string, clickCount int64) error {
	s.mu.Lock()
	x, y := s.lastX, s.lastY
	s.mu.Unlock()

	err := s.sendMouse(ctx, input.MouseReleased, x, y,
		chromedp.Button(button), chromedp.ClickCount(int(clickCount)))
	if err != nil {
		return fmt.Errorf("pointer release failed: %w", err)
	}
	return nil
}

// Hover moves the pointer onto the element's center.
func (s *Session) Hover(ctx context.Context, sel string) error {
	s.logger.Debug("Hovering.", zap.String("selector", sel))
	center, err := s.elementCenter(ctx, sel)
	if err != nil {
		return err
	}
	return s.mouseMove(ctx, center)
}

// RightClick performs a context click on the element.
func (s *Session) RightClick(ctx context.Context, sel string) error {
	s.logger.Debug("Right-clicking.", zap.String("selector", sel))
	center, err := s.elementCenter(ctx, sel)
	if err != nil {
		return err
	}
	return s.contextClickAt(ctx, center)
}

// contextClickAt moves to p and clicks the right button once.
func (s *Session) contextClickAt(ctx context.Context, p point) error {
	if err := s.mouseMove(ctx, p); err != nil {
		return err
	}
	if err := s.mousePress(ctx, "right", 1); err != nil {
		return err
	}
	return s.mouseRelease(ctx, "right", 1)
}

// DoubleClick performs a double click on the element.
func (s *Session) DoubleClick(ctx context.Context, sel string) error {
	s.logger.Debug("Double-clicking.", zap.String("selector", sel))
	center, err := s.elementCenter(ctx, sel)
	if err != nil {
		return err
	}
	return s.doubleClickAt(ctx, center)
}

// doubleClickAt moves to p and emits two click pairs, the second with a
// click count of two so the page synthesizes a dblclick.
func (s *Session) doubleClickAt(ctx context.Context, p point) error {
	if err := s.mouseMove(ctx, p); err != nil {
		return err
	}
	if err := s.mousePress(ctx, "left", 1); err != nil {
		return err
	}
	if err := s.mouseRelease(ctx, "left", 1); err != nil {
		return err
	}
	if err := s.mousePress(ctx, "left", 2); err != nil {
		return err
	}
	return s.mouseRelease(ctx, "left", 2)
}

// ClickAndHold presses the left button on the element and leaves it held.
// Pair with ReleaseMouse.
func (s *Session) ClickAndHold(ctx context.Context, sel string) error {
	s.logger.Debug("Click-and-hold.", zap.String("selector", sel))
	if err := s.Hover(ctx, sel); err != nil {
		return err
	}
	return s.mousePress(ctx, "left", 1)
}

// ReleaseMouse releases the left button at the current cursor position.
func (s *Session) ReleaseMouse(ctx context.Context) error {
	return s.mouseRelease(ctx, "left", 1)
}

// DragAndDrop presses on the source element, moves to the target element in
// a few steps, and releases. Exactly one press and one release per call.
func (s *Session) DragAndDrop(ctx context.Context, sourceSel, targetSel string) error {
	s.logger.Debug("Drag-and-drop.", zap.String("source", sourceSel), zap.String("target", targetSel))

	start, err := s.elementCenter(ctx, sourceSel)
	if err != nil {
		return err
	}
	end, err := s.elementCenter(ctx, targetSel)
	if err != nil {
		return err
	}
	return s.dragFromTo(ctx, start, end)
}

// MoveSliderByOffset presses on the slider handle, moves it horizontally by
// xOffset pixels, and releases.
func (s *Session) MoveSliderByOffset(ctx context.Context, sel string, xOffset int) error {
	s.logger.Debug("Moving slider.", zap.String("selector", sel), zap.Int("x_offset", xOffset))

	start, err := s.elementCenter(ctx, sel)
	if err != nil {
		return err
	}
	end := point{X: start.X + float64(xOffset), Y: start.Y}
	return s.dragFromTo(ctx, start, end)
}

// dragFromTo holds the left button from start to end: one press, a short
// move sequence, one release.
func (s *Session) dragFromTo(ctx context.Context, start, end point) error {
	if err := s.mouseMove(ctx, start); err != nil {
		return err
	}
	if err := s.mousePress(ctx, "left", 1); err != nil {
		return err
	}
	if err := s.dragTo(ctx, start, end); err != nil {
		return err
	}
	return s.mouseRelease(ctx, "left", 1)
}

// dragSteps is the number of intermediate pointer moves in a drag. Some drag
// implementations ignore a single jump from source to target.
const dragSteps = 4

// dragTo emits a short linear sequence of pointer moves from start to end
// while a button is held.
func (s *Session) dragTo(ctx context.Context, start, end point) error {
	for i := 1; i <= dragSteps; i++ {
		frac := float64(i) / float64(dragSteps)
		p := point{
			X: start.X + (end.X-start.X)*frac,
			Y: start.Y + (end.Y-start.Y)*frac,
		}
		if err := s.mouseMove(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
