package notify

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"lolbin-monitor/internal/browse"
	"lolbin-monitor/internal/model"
)

// Desktop surfaces alerts as system notifications. Every notification gets
// its own supervised Handle, so outstanding ones can be enumerated and
// dismissed when the app exits instead of being fire-and-forget.
type Desktop struct {
	appName      string
	dashboardURL string
	display      time.Duration
	opener       browse.Opener
	send         func(title, message string) error

	mu     sync.Mutex
	open   map[*Handle]struct{}
	latest *Handle // most recent alert notification, dismissed or not
}

func NewDesktop(appName, dashboardURL string, display time.Duration, opener browse.Opener) *Desktop {
	if display <= 0 {
		display = 15 * time.Second
	}
	if opener == nil {
		opener = browse.Default{}
	}
	return &Desktop{
		appName:      appName,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		display:      display,
		opener:       opener,
		send: func(title, message string) error {
			return beeep.Alert(title, message, "")
		},
		open: make(map[*Handle]struct{}),
	}
}

func (d *Desktop) Name() string { return "desktop" }

// Notify spawns an independent notification for the alert and returns
// immediately; rendering never blocks the poll loop or other notifications.
func (d *Desktop) Notify(ctx context.Context, a model.Alert) error {
	d.spawn(a.Title(), a.Body(), a.Key())
	return nil
}

// Notice shows a non-alert notification (startup banner, About). It carries
// no alert identity, so it has no detail page to link to.
func (d *Desktop) Notice(title, message string) *Handle {
	return d.spawn(title, message, "")
}

func (d *Desktop) spawn(title, message, alertID string) *Handle {
	h := &Handle{d: d, alertID: alertID, done: make(chan struct{})}
	d.mu.Lock()
	d.open[h] = struct{}{}
	if alertID != "" {
		d.latest = h
	}
	d.mu.Unlock()
	go h.run(title, message)
	return h
}

// ViewLatest opens the dashboard page of the most recent alert, dismissing
// its notification if still on screen. The desktop notification itself has no
// buttons, so this is the tray's route to the detail page of what just
// popped up. No-op before the first alert.
func (d *Desktop) ViewLatest() error {
	d.mu.Lock()
	h := d.latest
	d.mu.Unlock()
	if h == nil {
		return nil
	}
	return h.ViewDetails()
}

func (d *Desktop) remove(h *Handle) {
	d.mu.Lock()
	delete(d.open, h)
	d.mu.Unlock()
}

// Outstanding reports how many notifications are currently on screen.
func (d *Desktop) Outstanding() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.open)
}

// DismissAll closes every outstanding notification. Called on exit.
func (d *Desktop) DismissAll() {
	d.mu.Lock()
	hs := make([]*Handle, 0, len(d.open))
	for h := range d.open {
		hs = append(hs, h)
	}
	d.mu.Unlock()
	for _, h := range hs {
		h.Dismiss()
	}
}

// Handle supervises one on-screen notification from display to dismissal.
type Handle struct {
	d       *Desktop
	alertID string
	once    sync.Once
	done    chan struct{}
}

func (h *Handle) run(title, message string) {
	defer h.d.remove(h)
	if err := h.d.send(title, message); err != nil {
		log.Printf("notify %q: %v", title, err)
	}
	t := time.NewTimer(h.d.display)
	defer t.Stop()
	select {
	case <-t.C: // auto-dismiss
	case <-h.done:
	}
}

// Dismiss closes the notification immediately. Safe to call more than once.
func (h *Handle) Dismiss() {
	h.once.Do(func() { close(h.done) })
}

// ViewDetails opens the dashboard at this alert's detail page and closes the
// notification. Handles without an alert identity just close.
func (h *Handle) ViewDetails() error {
	defer h.Dismiss()
	if h.alertID == "" {
		return nil
	}
	return h.d.opener.Open(h.d.dashboardURL + "/alert/" + h.alertID)
}
