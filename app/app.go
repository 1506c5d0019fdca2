package app

import (
	"fmt"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/focus-tracker-go/config"
	"github.com/soocke/focus-tracker-go/debug"
	"github.com/soocke/focus-tracker-go/domain/session"
	"github.com/soocke/focus-tracker-go/ui/presenter"
	"github.com/soocke/focus-tracker-go/ui/theme"
	"github.com/soocke/focus-tracker-go/ui/view"
)

const (
	tick = 200 * time.Millisecond

	debugLogInterval = 5 * time.Second
)

type app struct {
	title   string
	config  *config.Config
	cfgPath string
	logger  *slog.Logger
	width   int
	height  int
	afterID string

	container *AppContainer
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{title: title, config: cfg, cfgPath: cfgPath, logger: logger, width: width, height: height}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start assembles the container, builds the widgets, wires the presenters and
// runs the Tk main loop until the window closes.
func (a *app) Start() error {
	theme.InitStyles()

	c, err := BuildContainer(a.config, a.logger, a.cfgPath, func() { requestAttention(a.title) })
	if err != nil {
		return err
	}
	a.container = c

	c.RootView.Build(view.Callbacks{
		Calibrate:     c.SessionPresenter.Calibrate,
		StartSession:  c.SessionPresenter.Begin,
		Stop:          c.SessionPresenter.End,
		Exit:          a.exitHandler,
		ShowSession:   c.HistoryPresenter.Show,
		DeleteSession: c.HistoryPresenter.Delete,
		PrevWeek:      func() { c.WeeklyPresenter.Prev(time.Now()) },
		NextWeek:      func() { c.WeeklyPresenter.Next(time.Now()) },
	})

	// A finished session changes what the browsing panels show.
	c.SessionPresenter.Ended = func(session.Record) {
		c.HistoryPresenter.Reload()
		c.WeeklyPresenter.Reload(time.Now())
	}

	c.HistoryPresenter.Reload()
	c.WeeklyPresenter.Reload(time.Now())

	if a.config != nil && a.config.Debug {
		debug.StartGoroutineLogger(debugLogInterval, a.logger)
		debug.StartMemLogger(debugLogInterval, a.logger)
	}

	c.Loop = presenter.NewLoop(c.Machine, c.SessionPresenter, a.scheduleUpdate)
	a.scheduleUpdate()

	App.Wait()
	return nil
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.container != nil {
		// Finalize a running session while the store is still open.
		if a.container.Machine != nil {
			a.container.Machine.Stop(time.Now())
		}
		a.container.Close()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, a.tickHandler)
}

func (a *app) tickHandler() {
	defer func() {
		if r := recover(); r != nil {
			if a.logger != nil {
				a.logger.Error("ui tick panic", "panic", r)
			}
			a.scheduleUpdate() // keep the loop alive
		}
	}()
	if a.container != nil && a.container.Loop != nil {
		a.container.Loop.Tick()
	}
}
