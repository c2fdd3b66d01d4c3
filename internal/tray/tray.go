package tray

import (
	"context"
	"log"

	"fyne.io/systray"

	"lolbin-monitor/internal/browse"
	"lolbin-monitor/internal/config"
	"lolbin-monitor/internal/notify"
	"lolbin-monitor/internal/poller"
)

// Controller owns the tray icon and its menu. Its run loop is the process's
// foreground keep-alive: Run blocks the calling goroutine until Quit is
// chosen or ctx is cancelled.
type Controller struct {
	cfg     *config.Config
	version string
	poller  *poller.Poller
	desktop *notify.Desktop
	opener  browse.Opener
	cancel  context.CancelFunc
}

func New(cfg *config.Config, version string, p *poller.Poller, d *notify.Desktop, opener browse.Opener, cancel context.CancelFunc) *Controller {
	if opener == nil {
		opener = browse.Default{}
	}
	return &Controller{
		cfg:     cfg,
		version: version,
		poller:  p,
		desktop: d,
		opener:  opener,
		cancel:  cancel,
	}
}

func (c *Controller) Run(ctx context.Context) {
	systray.Run(func() { c.onReady(ctx) }, c.onExit)
}

func (c *Controller) onReady(ctx context.Context) {
	systray.SetIcon(Icon(c.cfg.App.IconSizePx))
	systray.SetTitle(c.cfg.App.Name)
	systray.SetTooltip(c.cfg.App.Name)

	mDashboard := systray.AddMenuItem("Open Dashboard", "Open the detection dashboard")
	mCheck := systray.AddMenuItem("Check for Alerts Now", "Run a poll cycle immediately")
	mLatest := systray.AddMenuItem("View Latest Alert", "Open the newest alert in the dashboard")
	mAbout := systray.AddMenuItem("About", "About "+c.cfg.App.Name)
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Stop monitoring and exit")

	go func() {
		for {
			select {
			case <-ctx.Done():
				systray.Quit()
				return
			case <-mDashboard.ClickedCh:
				if err := c.opener.Open(c.cfg.Dashboard.URL); err != nil {
					log.Printf("open dashboard: %v", err)
				}
			case <-mCheck.ClickedCh:
				// Serialized with the scheduled cycle inside the poller, so a
				// click during a tick just waits its turn.
				go func() {
					st, err := c.poller.CheckOnce(ctx)
					if err != nil {
						log.Printf("manual check: %v", err)
						return
					}
					log.Printf("manual check: %d alert(s), %d new", st.Fetched, st.New)
				}()
			case <-mLatest.ClickedCh:
				if err := c.desktop.ViewLatest(); err != nil {
					log.Printf("view latest alert: %v", err)
				}
			case <-mAbout.ClickedCh:
				c.desktop.Notice("About "+c.cfg.App.Name,
					c.cfg.App.Name+" "+c.version+"\n\nMonitoring for suspicious activity.")
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (c *Controller) onExit() {
	c.desktop.DismissAll()
	c.cancel()
}
