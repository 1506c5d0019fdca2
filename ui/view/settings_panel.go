package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/focus-tracker-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel encapsulates the settings form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type SettingsPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type settingsPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewSettingsPanel creates the view bound to cfg.
func NewSettingsPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) SettingsPanel {
	return &settingsPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *settingsPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	header := Label(Txt("Settings"), Anchor("w"))
	Grid(header, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	row++
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("studyMinutes", "Study Minutes", fmt.Sprintf("%d", c.StudyMinutes))
	makeRow("alertAfterSeconds", "Alert After Seconds", fmt.Sprintf("%d", c.AlertAfterSeconds))
	makeRow("boundaryTolerancePx", "Boundary Tolerance Px", fmt.Sprintf("%d", c.BoundaryTolerancePx))
	makeRow("pupilThreshold", "Pupil Threshold (1-255)", fmt.Sprintf("%d", c.PupilThreshold))
	makeRow("cameraDevice", "Camera Device", fmt.Sprintf("%d", c.CameraDevice))
	makeRow("debug", "Debug (true/false)", fmt.Sprintf("%t", c.Debug))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *settingsPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *settingsPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *settingsPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignBool := func(id string, dst *bool) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if b, ok := parseBoolLoose(strings.TrimSpace(v.text(w))); ok {
			*dst = b
		}
	}
	assignInt("studyMinutes", &cfg.StudyMinutes)
	assignInt("alertAfterSeconds", &cfg.AlertAfterSeconds)
	assignInt("boundaryTolerancePx", &cfg.BoundaryTolerancePx)
	assignInt("pupilThreshold", &cfg.PupilThreshold)
	assignInt("cameraDevice", &cfg.CameraDevice)
	assignBool("debug", &cfg.Debug)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			// Camera and cascade settings take effect on next start.
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

// parsing helpers (unexported)
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
