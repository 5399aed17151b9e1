package view

import (
	"log/slog"
	"strings"

	"github.com/soocke/spectator-recorder/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the recorder settings form.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by config field name
}

var fieldLabels = map[string]string{
	"fps":         "Frames per second",
	"output_path": "Output file",
	"ffmpeg_path": "ffmpeg binary",
	"codec":       "Video codec",
	"preset":      "Encoder preset",
	"crf":         "CRF (0-51)",
	"scheduler":   "Scheduler (ticker/tk)",
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	row = startRow
	for _, key := range config.Fields {
		lbl := Label(Txt(fieldLabels[key]), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(28))
		Grid(w, Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", v.cfg.Get(key))
		v.widgets[key] = w
		row++
	}
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
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

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.Join(w.Get("1.0", END), "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	for key, w := range v.widgets {
		if err := cfg.Set(key, v.text(w)); err != nil && v.logger != nil {
			v.logger.Warn("config field ignored", "field", key, "error", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	for key, w := range v.widgets {
		w.Delete("1.0", END)
		w.Insert("1.0", v.cfg.Get(key))
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
}
