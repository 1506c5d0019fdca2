package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for tracking and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`
	// Capture parameters
	CameraDevice    int `json:"camera_device"`
	FrameIntervalMs int `json:"frame_interval_ms"`

	// Pupil detection parameters
	FaceCascadePath string `json:"face_cascade_path"`
	EyeCascadePath  string `json:"eye_cascade_path"`
	PupilThreshold  int    `json:"pupil_threshold"`

	// Session parameters
	StudyMinutes          int `json:"study_minutes"`
	SampleIntervalSeconds int `json:"sample_interval_seconds"`
	AlertAfterSeconds     int `json:"alert_after_seconds"`
	BoundaryTolerancePx   int `json:"boundary_tolerance_px"`

	// Persistence
	DatabasePath string `json:"database_path"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		CameraDevice:          0,
		FrameIntervalMs:       50,
		FaceCascadePath:       "models/haarcascade_frontalface_default.xml",
		EyeCascadePath:        "models/haarcascade_eye.xml",
		PupilThreshold:        40,
		StudyMinutes:          25,
		SampleIntervalSeconds: 1,
		AlertAfterSeconds:     5,
		BoundaryTolerancePx:   5,
		DatabasePath:          "focus_sessions.db",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.CameraDevice < 0 {
		c.CameraDevice = 0
	}
	if c.FrameIntervalMs <= 0 {
		c.FrameIntervalMs = 50
	}
	if c.FaceCascadePath == "" {
		c.FaceCascadePath = "models/haarcascade_frontalface_default.xml"
	}
	if c.EyeCascadePath == "" {
		c.EyeCascadePath = "models/haarcascade_eye.xml"
	}
	if c.PupilThreshold <= 0 || c.PupilThreshold > 255 {
		c.PupilThreshold = 40
	}
	if c.StudyMinutes <= 0 {
		c.StudyMinutes = 25
	}
	if c.SampleIntervalSeconds <= 0 {
		c.SampleIntervalSeconds = 1
	}
	if c.AlertAfterSeconds <= 0 {
		c.AlertAfterSeconds = 5
	}
	if c.BoundaryTolerancePx < 0 {
		c.BoundaryTolerancePx = 5
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "focus_sessions.db"
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
