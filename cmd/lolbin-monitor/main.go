package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lolbin-monitor/internal/browse"
	"lolbin-monitor/internal/config"
	"lolbin-monitor/internal/metrics"
	"lolbin-monitor/internal/notify"
	"lolbin-monitor/internal/poller"
	"lolbin-monitor/internal/source"
	"lolbin-monitor/internal/store"
	"lolbin-monitor/internal/tray"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	var (
		cfgPath  = flag.String("config", "config.yml", "path to YAML config")
		interval = flag.Duration("interval", 0, "override poll interval")
		once     = flag.Bool("once", false, "run a single poll cycle then exit")
		headless = flag.Bool("headless", false, "run without the tray icon")
		verbose  = flag.Bool("verbose", true, "log every poll cycle, not just ones with news")
	)
	flag.Parse()

	log.Printf("lolbin-monitor %s starting...", Version)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *interval > 0 {
		cfg.CheckInterval = *interval
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opener := browse.Default{}
	desktop := notify.NewDesktop(cfg.App.Name, cfg.Dashboard.URL, cfg.Notify.DisplayDuration, opener)
	seen := store.NewSeen(cfg.Seen.MaxKeys, cfg.Seen.TTL)
	src := source.NewBackend(cfg.Backend)
	m := metrics.New(cfg.Metrics.ListenAddress, desktop.Outstanding)
	p := poller.New(src, seen, []notify.Notifier{desktop}, m, cfg.CheckInterval, *verbose)

	if *once {
		st, err := p.CheckOnce(ctx)
		if err != nil {
			log.Fatalf("check: %v", err)
		}
		log.Printf("single check: %d alert(s), %d new", st.Fetched, st.New)
		return
	}

	if cfg.Metrics.Enabled {
		go func() {
			log.Printf("serving /metrics on %s", cfg.Metrics.ListenAddress)
			if err := m.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	desktop.Notice(cfg.App.Name+" Active",
		"The LOLBin detection system is now running in the background. "+
			"You will be notified of any suspicious activity.")

	go p.Run(ctx)

	log.Printf("monitoring %s every %s", cfg.Backend.URL, cfg.CheckInterval)
	if *headless {
		<-ctx.Done()
		desktop.DismissAll()
	} else {
		tray.New(cfg, Version, p, desktop, opener, cancel).Run(ctx)
	}

	log.Println("shutting down...")
	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = m.Shutdown(shutdownCtx)
}
