package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conferencetimer/internal/core/clock"
	"conferencetimer/internal/core/model"
	"conferencetimer/internal/core/timerengine"
	"conferencetimer/internal/eventlog"
	"conferencetimer/internal/notify"
	"conferencetimer/internal/platform"
	"conferencetimer/internal/session"
	"conferencetimer/internal/storage"
	"conferencetimer/internal/ui/console"
	"conferencetimer/internal/ui/overlay"
	"conferencetimer/internal/ui/preferences"
	"conferencetimer/internal/ui/tray"
	"conferencetimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	appName = "ConferenceTimer"
	appID   = "com.conferencetimer.app"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("conference timer failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	if opts.DumpLog != "" {
		return dumpLog(opts.DumpLog, stdout)
	}

	settings, err := loadSettings(opts.ConfigPath)
	if err != nil {
		slog.Warn("using default settings", "error", err)
	}
	settings = opts.apply(settings)

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(settings.LogLevel)}))
	slog.SetDefault(logger)

	realClock := clock.Real()
	start, deadline, err := opts.inputs(realClock.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Headless {
		return runHeadless(ctx, opts, settings, realClock, start, deadline, logger)
	}
	return runDesktop(ctx, opts, settings, realClock, start, deadline, logger)
}

func loadSettings(path string) (preferences.Settings, error) {
	if path == "" {
		return storage.LoadSettings(appName)
	}
	return storage.LoadSettingsFile(path)
}

func saveSettings(path string, settings preferences.Settings) error {
	if path == "" {
		return storage.SaveSettings(appName, settings)
	}
	return storage.SaveSettingsFile(path, settings)
}

func dumpLog(path string, stdout io.Writer) error {
	entries, err := eventlog.ReadAll(path)
	if err != nil {
		return fmt.Errorf("dump event log: %w", err)
	}
	for _, entry := range entries {
		fmt.Fprintln(stdout, formatEntry(entry))
	}
	return nil
}

func formatEntry(entry eventlog.Entry) string {
	line := fmt.Sprintf("%s %-11s %-9s %s",
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.Type,
		entry.Mode,
		entry.Display)
	if entry.Style != "" {
		line += " [" + entry.Style + "]"
	}
	if entry.CountdownID != "" {
		line += " " + entry.CountdownID
	}
	return line
}

// openEventLog returns a hook that feeds every engine's events to the event
// log file, or nil when no path is configured.
func openEventLog(path string, logger *slog.Logger) (func(*timerengine.Engine), func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	fileLogger, err := eventlog.NewFileLogger(path)
	if err != nil {
		return nil, func() {}, err
	}
	logger.Info("writing event log", "path", path)
	attach := func(engine *timerengine.Engine) {
		fileLogger.Follow(engine.Subscribe(64))
	}
	return attach, func() { _ = fileLogger.Close() }, nil
}

func runHeadless(ctx context.Context, opts Options, settings preferences.Settings, realClock clock.Clock, start, deadline model.Timestamp, logger *slog.Logger) error {
	controller := session.NewController(ctx, logger)

	attachLog, closeLog, err := openEventLog(settings.EventLogPath, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	timer := newLiveTimer(settings.TimerConfig(), timerengine.Dependencies{
		Clock:    realClock,
		Renderer: console.New(logger),
		Notifier: notify.NewLog(logger),
		Session:  controller,
		Logger:   logger,
	}, attachLog)
	defer timer.Close()

	timer.Activate(start, deadline)
	scheduleInputs(ctx, opts, timer)

	if !opts.ExitOnEnd {
		<-ctx.Done()
		return nil
	}
	<-controller.Context().Done()
	logger.Info("session over", "cause", context.Cause(controller.Context()))
	return nil
}

func runDesktop(ctx context.Context, opts Options, settings preferences.Settings, realClock clock.Clock, start, deadline model.Timestamp, logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, activating existing instance")
		return platform.ActivateRunning(appName)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Conference Timer is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	overlayWindow := overlay.New(fyneApp, overlayConfig(settings))
	controller := session.NewController(ctx, logger)

	attachLog, closeLog, err := openEventLog(settings.EventLogPath, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	var trayManager *tray.Manager
	timer := newLiveTimer(settings.TimerConfig(), timerengine.Dependencies{
		Clock:    realClock,
		Renderer: overlayWindow,
		Notifier: notify.NewDesktop(fyneApp, logger),
		Session:  controller,
		Logger:   logger,
	}, func(engine *timerengine.Engine) {
		if attachLog != nil {
			attachLog(engine)
		}
		go watchEngine(engine.Subscribe(16), desktopApp, func() *tray.Manager { return trayManager })
	})
	defer timer.Close()

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := saveSettings(opts.ConfigPath, settings); err != nil {
			logger.Error("save settings", "error", err)
		}
		overlayWindow.UpdateConfig(overlayConfig(settings))
		timer.Reconfigure(settings.TimerConfig())
	})

	trayManager = tray.New(desktopApp, appName, tray.Callbacks{
		OnShowTimer: func() {
			overlayWindow.Show()
		},
		OnSetLimit: func(limit time.Duration) {
			logger.Info("time limit set", "limit", limit)
			timer.SetLimit(limit)
		},
		OnRestart: func() {
			logger.Info("timer restarted")
			trayManager.SetEnded(false)
			desktopApp.SetSystemTrayIcon(resources.AppIcon())
			timer.Restart()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			timer.Close()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.AppIcon())

	controller.OnEnd(func(cause error) {
		fyne.Do(func() {
			if errors.Is(cause, session.ErrTimeLimitReached) {
				trayManager.SetEnded(true)
				desktopApp.SetSystemTrayIcon(resources.EndedIcon())
			}
			if opts.ExitOnEnd || !errors.Is(cause, session.ErrTimeLimitReached) {
				timer.Close()
				fyneApp.Quit()
			}
		})
	})

	go guard.Serve(func() {
		fyne.Do(func() {
			overlayWindow.Show()
		})
	})
	go endOnSignal(ctx, controller)

	timer.Activate(start, deadline)
	scheduleInputs(ctx, opts, timer)

	overlayWindow.Show()
	fyneApp.Run()
	return nil
}

// endOnSignal ends the session when ctx is cancelled by an interrupt. The
// session context derives from ctx, so it is done in either case; End is a
// no-op when the time limit already ended it.
func endOnSignal(ctx context.Context, controller *session.Controller) {
	<-controller.Context().Done()
	if err := ctx.Err(); err != nil {
		controller.End(err)
	}
}

// watchEngine mirrors engine events into the tray until the engine closes.
func watchEngine(events <-chan timerengine.Event, desktopApp desktop.App, manager func() *tray.Manager) {
	for event := range events {
		event := event
		fyne.Do(func() {
			trayManager := manager()
			if trayManager == nil {
				return
			}
			switch event.Type {
			case timerengine.EventDisplay:
				trayManager.SetStatus(event.Display.Formatted)
			case timerengine.EventModeChange:
				trayManager.SetMode(event.Mode.String())
			case timerengine.EventWarning:
				desktopApp.SetSystemTrayIcon(resources.AlertIcon())
			}
		})
	}
}

// scheduleInputs delivers a delayed start (-start-after) and a delayed limit
// (-limit-after) the way a moderator would during a running session.
func scheduleInputs(ctx context.Context, opts Options, timer *liveTimer) {
	if opts.StartAfter > 0 {
		go after(ctx, opts.StartAfter, timer.StartNow)
	}
	if opts.Limit > 0 && opts.LimitAfter > 0 {
		go after(ctx, opts.LimitAfter, func() {
			timer.SetLimit(opts.Limit)
		})
	}
}

func after(ctx context.Context, delay time.Duration, fn func()) {
	wait := time.NewTimer(delay)
	defer wait.Stop()
	select {
	case <-ctx.Done():
	case <-wait.C:
		fn()
	}
}

func overlayConfig(settings preferences.Settings) overlay.Config {
	return overlay.Config{
		Opacity:    opacityToAlpha(settings.OverlayOpacity),
		Fullscreen: settings.Fullscreen,
		Title:      appName,
	}
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
