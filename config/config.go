package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration for the recorder and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug     bool   `json:"debug"`
	DarkMode  bool   `json:"dark_mode"`
	LogFormat string `json:"log_format"`
	LogLevel  int    `json:"log_level"`
	LogFile   string `json:"log_file"`

	// Recording parameters
	FPS        int    `json:"fps"`
	OutputPath string `json:"output_path"`
	FFmpegPath string `json:"ffmpeg_path"`
	Codec      string `json:"codec"`
	Preset     string `json:"preset"`
	CRF        int    `json:"crf"`

	// Scheduler drives capture ticks: "ticker" (own goroutine) or "tk"
	// (Tk event loop, GUI only).
	Scheduler string `json:"scheduler"`

	// Source selects the capture target: "screen" or "pattern".
	Source        string `json:"source"`
	PatternWidth  int    `json:"pattern_width"`
	PatternHeight int    `json:"pattern_height"`

	// Selection rectangle persistence
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`

	// StatusAddr enables the HTTP status endpoint when non-empty.
	StatusAddr         string `json:"status_addr"`
	MaxDurationSeconds int    `json:"max_duration_seconds"`
}

const (
	SourceScreen  = "screen"
	SourcePattern = "pattern"

	SchedulerTicker = "ticker"
	SchedulerTk     = "tk"
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		LogFormat:          "json",
		LogLevel:           0,
		FPS:                30,
		OutputPath:         "recording.mp4",
		FFmpegPath:         "ffmpeg",
		Codec:              "libx264",
		Preset:             "ultrafast",
		CRF:                23,
		Scheduler:          SchedulerTicker,
		Source:             SourceScreen,
		PatternWidth:       1280,
		PatternHeight:      720,
		SelectionX:         0,
		SelectionY:         0,
		SelectionW:         0,
		SelectionH:         0,
		StatusAddr:         "",
		MaxDurationSeconds: 0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.FPS > 120 {
		c.FPS = 120
	}
	if c.OutputPath == "" {
		c.OutputPath = "recording.mp4"
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.Codec == "" {
		c.Codec = "libx264"
	}
	if c.Preset == "" {
		c.Preset = "ultrafast"
	}
	// x264/x265 CRF range
	if c.CRF < 0 || c.CRF > 51 {
		c.CRF = 23
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		c.LogFormat = "json"
	}
	if c.Scheduler != SchedulerTicker && c.Scheduler != SchedulerTk {
		c.Scheduler = SchedulerTicker
	}
	if c.Source != SourceScreen && c.Source != SourcePattern {
		c.Source = SourceScreen
	}
	if c.PatternWidth <= 0 {
		c.PatternWidth = 1280
	}
	if c.PatternHeight <= 0 {
		c.PatternHeight = 720
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	if c.MaxDurationSeconds < 0 {
		c.MaxDurationSeconds = 0
	}
	return nil
}

// SelectionRect returns the persisted capture region, or an empty rectangle
// when the whole screen should be recorded.
func (c *Config) SelectionRect() image.Rectangle {
	if c == nil || c.SelectionW <= 0 || c.SelectionH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.SelectionX, c.SelectionY, c.SelectionX+c.SelectionW, c.SelectionY+c.SelectionH)
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

// Fields lists the keys accepted by Set, in form order.
var Fields = []string{"fps", "output_path", "ffmpeg_path", "codec", "preset", "crf", "scheduler"}

// Get returns the textual value of an editable field.
func (c *Config) Get(key string) string {
	switch key {
	case "fps":
		return strconv.Itoa(c.FPS)
	case "output_path":
		return c.OutputPath
	case "ffmpeg_path":
		return c.FFmpegPath
	case "codec":
		return c.Codec
	case "preset":
		return c.Preset
	case "crf":
		return strconv.Itoa(c.CRF)
	case "scheduler":
		return c.Scheduler
	}
	return ""
}

// Set parses value into the field named key. Empty values leave the field
// unchanged. Range clamping is left to Validate.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	atoi := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = n
		return nil
	}
	switch key {
	case "fps":
		return atoi(&c.FPS)
	case "crf":
		return atoi(&c.CRF)
	case "output_path":
		c.OutputPath = value
	case "ffmpeg_path":
		c.FFmpegPath = value
	case "codec":
		c.Codec = value
	case "preset":
		c.Preset = value
	case "scheduler":
		c.Scheduler = strings.ToLower(value)
	default:
		return fmt.Errorf("config: unknown field %q", key)
	}
	return nil
}
