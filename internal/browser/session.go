// File: internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nghalot5-hub/crm.vtiger/internal/config"
)

// tab is one attached browser tab. Its context carries the CDP target and is
// the execution context for every action routed to that tab.
type tab struct {
	id     target.ID
	ctx    context.Context
	cancel context.CancelFunc
}

// Session wraps one live browser automation session. It exclusively borrows
// the browser owned by the Manager: it opens and attaches tabs but never
// starts or stops the browser process itself.
//
// One logical caller is expected to drive a session at a time. The mutex only
// protects the bookkeeping that the per-tab CDP event listeners touch
// concurrently (active-tab pointer, pending dialog, pointer position).
type Session struct {
	id     string
	cfg    *config.Config
	logger *zap.Logger

	mu     sync.Mutex
	tabs   map[target.ID]*tab
	active *tab

	// Pending JavaScript dialog for the session, recorded by the per-tab
	// listener the moment it opens.
	dialog     *pendingDialog
	promptText string

	// Last dispatched pointer position, so ReleaseMouse and held drags know
	// where the cursor is.
	lastX, lastY float64

	// mouseDispatch routes raw mouse events to the page. Left nil in
	// production; replaced in tests to record gesture sequences.
	mouseDispatch mouseDispatchFunc

	onClose   func()
	closeOnce sync.Once
}

// pendingDialog captures a JavaScript dialog that is currently open.
type pendingDialog struct {
	tab           *tab
	kind          page.DialogType
	message       string
	defaultPrompt string
}

// newSession opens one tab against the allocator and wires it up.
func newSession(allocatorCtx context.Context, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	sessionID := uuid.New().String()

	s := &Session{
		id:     sessionID,
		cfg:    cfg,
		logger: logger.Named("session").With(zap.String("session_id", sessionID)),
		tabs:   make(map[target.ID]*tab),
	}

	tabCtx, tabCancel := chromedp.NewContext(allocatorCtx)
	// Materialize the tab so the target ID is known.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to open initial tab: %w", err)
	}

	c := chromedp.FromContext(tabCtx)
	if c == nil || c.Target == nil {
		tabCancel()
		return nil, fmt.Errorf("initial tab has no target information")
	}

	first := &tab{id: c.Target.TargetID, ctx: tabCtx, cancel: tabCancel}
	s.tabs[first.id] = first
	s.active = first
	s.watchDialogs(first)

	s.logger.Debug("Session opened.", zap.String("window", string(first.id)))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// ActiveWindow returns the handle of the currently active tab.
func (s *Session) ActiveWindow() target.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.id
}

// activeTab returns the current tab under lock.
func (s *Session) activeTab() *tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// runActions executes chromedp actions against the active tab, honoring both
// the session/tab lifetime and the caller's context.
func (s *Session) runActions(ctx context.Context, actions ...chromedp.Action) error {
	t := s.activeTab()
	runCtx, cancel := CombineContext(t.ctx, ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// attach returns the tab for the given handle, connecting to it on first use.
func (s *Session) attach(id target.ID) (*tab, error) {
	s.mu.Lock()
	if t, ok := s.tabs[id]; ok {
		s.mu.Unlock()
		return t, nil
	}
	parent := s.active.ctx
	s.mu.Unlock()

	tabCtx, tabCancel := chromedp.NewContext(parent, chromedp.WithTargetID(id))
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to attach to window %s: %w", id, err)
	}

	t := &tab{id: id, ctx: tabCtx, cancel: tabCancel}
	s.watchDialogs(t)

	s.mu.Lock()
	s.tabs[id] = t
	s.mu.Unlock()

	s.logger.Debug("Attached to window.", zap.String("window", string(id)))
	return t, nil
}

// detachTab forgets a tab and releases its context.
func (s *Session) detachTab(id target.ID) {
	s.mu.Lock()
	t, ok := s.tabs[id]
	if ok {
		delete(s.tabs, id)
	}
	if s.dialog != nil && s.dialog.tab == t {
		s.dialog = nil
	}
	s.mu.Unlock()

	if ok {
		t.cancel()
	}
}

// watchDialogs records JavaScript dialogs opened by a tab so the alert
// operations can handle them later.
func (s *Session) watchDialogs(t *tab) {
	chromedp.ListenTarget(t.ctx, func(ev interface{}) {
		if e, ok := ev.(*page.EventJavascriptDialogOpening); ok {
			s.mu.Lock()
			s.dialog = &pendingDialog{
				tab:           t,
				kind:          e.Type,
				message:       e.Message,
				defaultPrompt: e.DefaultPrompt,
			}
			s.mu.Unlock()
			s.logger.Debug("JavaScript dialog opened.",
				zap.String("type", string(e.Type)), zap.String("message", e.Message))
		}
	})
}

// Close releases every attached tab. Idempotent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.logger.Debug("Closing session.")

		s.mu.Lock()
		tabs := make([]*tab, 0, len(s.tabs))
		for _, t := range s.tabs {
			tabs = append(tabs, t)
		}
		s.tabs = make(map[target.ID]*tab)
		s.dialog = nil
		s.mu.Unlock()

		for _, t := range tabs {
			t.cancel()
		}

		if s.onClose != nil {
			s.onClose()
		}
	})
	return nil
}
