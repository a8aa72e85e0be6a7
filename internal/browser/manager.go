// File: internal/browser/manager.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/nghalot5-hub/crm.vtiger/internal/config"
)

const shutdownGracePeriod = 15 * time.Second

// Manager owns the browser process lifecycle. All sessions derive from its
// allocator context; Shutdown closes every session before stopping the
// browser.
type Manager struct {
	logger *zap.Logger
	cfg    *config.Config

	allocatorCtx    context.Context
	allocatorCancel context.CancelFunc

	sessions map[string]*Session
	mu       sync.RWMutex
	wg       sync.WaitGroup

	// Launch is deferred until the first session is requested.
	initOnce sync.Once
	initErr  error
}

// NewManager creates a browser manager. The browser process is not launched
// until the first session is requested.
func NewManager(cfg *config.Config, logger *zap.Logger) *Manager {
	return &Manager{
		logger:   logger.Named("browser_manager"),
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// initialize prepares the allocator and verifies the browser starts.
func (m *Manager) initialize(ctx context.Context) error {
	m.initOnce.Do(func() {
		m.logger.Info("Launching browser process.")

		allocCtx, cancel := chromedp.NewExecAllocator(ctx, m.buildAllocatorOptions()...)
		m.allocatorCtx = allocCtx
		m.allocatorCancel = cancel

		// Confirm the browser is alive with a short-lived probe tab.
		testCtx, cancelTimeout := context.WithTimeout(allocCtx, 30*time.Second)
		defer cancelTimeout()
		probeCtx, cancelProbe := chromedp.NewContext(testCtx)
		defer cancelProbe()

		if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
			m.allocatorCancel()
			m.initErr = fmt.Errorf("browser failed to start or respond: %w", err)
			return
		}

		m.logger.Info("Browser launched and responsive.")
	})
	return m.initErr
}

// buildAllocatorOptions assembles launch flags from configuration.
func (m *Manager) buildAllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", m.cfg.Browser.Headless),
		chromedp.Flag("ignore-certificate-errors", m.cfg.Browser.IgnoreTLSErrors),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	if m.cfg.Browser.WindowWidth > 0 && m.cfg.Browser.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(m.cfg.Browser.WindowWidth, m.cfg.Browser.WindowHeight))
	}
	if m.cfg.Browser.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(m.cfg.Browser.ExecPath))
	}
	for _, arg := range m.cfg.Browser.Args {
		opts = append(opts, chromedp.Flag(arg, true))
	}

	return opts
}

// NewSession launches the browser if needed and opens a session with one tab.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	if err := m.initialize(ctx); err != nil {
		return nil, err
	}

	session, err := newSession(m.allocatorCtx, m.cfg, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	m.wg.Add(1)
	session.onClose = func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.sessions, session.ID())
		m.wg.Done()
		m.logger.Debug("Session removed from manager.", zap.String("session_id", session.ID()))
	}

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	m.logger.Info("New session created.", zap.String("session_id", session.ID()))
	return session, nil
}

// Shutdown closes all sessions and stops the browser process.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down browser manager.")

	if m.allocatorCtx == nil {
		m.logger.Info("Manager never launched a browser, nothing to shut down.")
		return nil
	}

	m.mu.RLock()
	sessionsToClose := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessionsToClose = append(sessionsToClose, s)
	}
	m.mu.RUnlock()

	for _, s := range sessionsToClose {
		go func(s *Session) {
			if err := s.Close(); err != nil {
				m.logger.Warn("Error closing session during shutdown.",
					zap.String("session_id", s.ID()), zap.Error(err))
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All sessions closed gracefully.")
	case <-ctx.Done():
		m.logger.Warn("Timeout waiting for sessions to close, proceeding anyway.", zap.Error(ctx.Err()))
	case <-time.After(shutdownGracePeriod):
		m.logger.Warn("Grace period elapsed waiting for sessions to close, proceeding anyway.")
	}

	m.allocatorCancel()
	m.logger.Info("Browser manager shutdown complete.")
	return nil
}
