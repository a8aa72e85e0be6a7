// File: internal/browser/screenshot.go
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// screenshotTimeLayout renders as HHMMSS_DDMMYYYY, keeping filenames free of
// path separators and colons.
const screenshotTimeLayout = "150405_02012006"

// timestampedName appends a wall-clock suffix to a base name so screenshots
// from successive runs never collide.
func timestampedName(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s", base, now.Format(screenshotTimeLayout))
}

// screenshotPath builds the destination path for a named screenshot.
func screenshotPath(dir, name string) string {
	return filepath.Join(dir, name+".png")
}

// saveScreenshot writes PNG bytes under dir, creating it if needed, and
// returns the file's path.
func saveScreenshot(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory %q: %w", dir, err)
	}
	path := screenshotPath(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot %q: %w", path, err)
	}
	return path, nil
}

// CaptureScreenshot captures the active tab and writes <dir>/<name>.png,
// returning the path. Whether the capture covers the viewport or the full
// page follows configuration.
func (s *Session) CaptureScreenshot(ctx context.Context, name string) (string, error) {
	var buf []byte
	var action chromedp.Action
	if s.cfg.Screenshot.FullPage {
		action = chromedp.FullScreenshot(&buf, 90)
	} else {
		action = chromedp.CaptureScreenshot(&buf)
	}

	if err := s.runActions(ctx, action); err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}

	path, err := saveScreenshot(s.cfg.Screenshot.Dir, name, buf)
	if err != nil {
		return "", err
	}

	s.logger.Debug("Screenshot saved.", zap.String("path", path), zap.Int("bytes", len(buf)))
	return path, nil
}

// CaptureScreenshotTimestamped captures the active tab under a name suffixed
// with the current time, so repeated captures of the same scenario keep
// distinct files.
func (s *Session) CaptureScreenshotTimestamped(ctx context.Context, base string) (string, error) {
	return s.CaptureScreenshot(ctx, timestampedName(base, time.Now()))
}
