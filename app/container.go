package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/focus-tracker-go/capture"
	"github.com/soocke/focus-tracker-go/config"
	"github.com/soocke/focus-tracker-go/domain/session"
	"github.com/soocke/focus-tracker-go/pupil"
	"github.com/soocke/focus-tracker-go/store"
	"github.com/soocke/focus-tracker-go/ui/model"
	"github.com/soocke/focus-tracker-go/ui/presenter"
	"github.com/soocke/focus-tracker-go/ui/view"
)

// AppContainer assembles the store, tracking pipeline, session machine,
// presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *store.Store
	Locator pupil.Locator
	Camera  *capture.Camera
	Tracker *capture.Service
	Machine *session.Machine
	Queue   *presenter.StatusQueue

	RootView *view.RootView
	UI       view.UI

	// Presenters
	SessionPresenter *presenter.SessionPresenter
	HistoryPresenter *presenter.HistoryPresenter
	WeeklyPresenter  *presenter.WeeklyPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components except the widgets; those are
// created by Build on the root view, and the update loop is wired by the app
// wrapper where the Tk scheduler lives. attention is invoked on sustained
// unfocus, from the UI thread.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string, attention func()) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}

	st, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	c.Store = st

	loc, err := pupil.NewCascadeLocator(pupil.Config{
		FaceCascadePath: cfg.FaceCascadePath,
		EyeCascadePath:  cfg.EyeCascadePath,
		PupilThreshold:  cfg.PupilThreshold,
	}, logger)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load pupil cascades: %w", err)
	}
	c.Locator = loc

	c.Camera = capture.NewCamera(cfg.CameraDevice)
	c.Queue = presenter.NewStatusQueue()
	c.Machine = session.NewMachine(logger, cfg, nil, st, c.Queue)
	c.Machine.AddListener(c.Queue.OnPhase)
	c.Tracker = capture.NewService(logger, cfg, c.Camera, c.Locator, c.Machine)
	c.Machine.AttachFrames(c.Tracker)

	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	// Presenters; the RootView tolerates calls before Build.
	c.SessionPresenter = presenter.NewSessionPresenter(c.Machine, c.Machine, c.Queue, c.RootView, attention)
	c.HistoryPresenter = presenter.NewHistoryPresenter(c.Store, model.NewHistoryModel(), c.RootView, logger)
	c.WeeklyPresenter = presenter.NewWeeklyPresenter(c.Store, model.NewWeeklyModel(time.Now()), c.RootView, logger)
	return c, nil
}

// Close releases everything the container opened, in pipeline order: the
// tracking worker first, then the vision resources, then the database.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	if c.Tracker != nil {
		c.Tracker.Stop()
	}
	if c.Locator != nil {
		if err := c.Locator.Close(); err != nil && c.Logger != nil {
			c.Logger.Error("locator close", "error", err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil && c.Logger != nil {
			c.Logger.Error("store close", "error", err)
		}
	}
}
