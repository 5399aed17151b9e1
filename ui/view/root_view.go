package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/spectator-recorder/config"
	"github.com/soocke/spectator-recorder/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	CapturePrev CapturePreview

	// Widgets
	StateLabel *TLabelWidget
	ErrorLabel *LabelWidget
	RecordBtn  *TButtonWidget
	previewRow int
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(onToggleRecord func(), onSelectRegion func(), onExit func()) {
	if rv == nil {
		return
	}
	// Rows 0-1: durations and counters, state label, buttons frame
	rv.Session = NewSessionStats(nil, 0, 0)
	rv.StateLabel = TLabel(Txt("State: idle"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.RecordBtn = TButton(Txt("Start Recording"), Style(theme.StylePrimaryButton), Command(onToggleRecord))
	Grid(rv.RecordBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	regionBtn := Button(Txt("Select Region"), Command(onSelectRegion))
	Grid(regionBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.ErrorLabel = Label(Txt(""), Foreground(theme.CurrentPalette().Danger), Anchor("w"))
	Grid(rv.ErrorLabel, Row(2), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.previewRow = rv.ConfigPanel.Build(3)

	// Capture preview placement
	rv.CapturePrev = NewCapturePreview(rv.previewRow)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// UpdateCapture proxies to the capture preview view.
func (rv *RootView) UpdateCapture(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateCapture(img)
	}
}

// SetSession updates recording and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total)
	}
}

func (rv *RootView) SetCounters(text string) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounters(text)
	}
}

// --- RecordPresenter view contract methods ---

// PreviewReset clears the capture preview canvas.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Reset()
	}
}

// ConfigEditable locks the form while recording and flips the record button.
func (rv *RootView) ConfigEditable(b bool) {
	if rv == nil {
		return
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(b)
	}
	if rv.RecordBtn != nil {
		if b {
			rv.RecordBtn.Configure(Txt("Start Recording"), Style(theme.StylePrimaryButton))
		} else {
			rv.RecordBtn.Configure(Txt("Stop Recording"), Style(theme.StyleDangerButton))
		}
	}
}

// ShowError displays msg below the controls; an empty msg clears it.
func (rv *RootView) ShowError(msg string) {
	if rv != nil && rv.ErrorLabel != nil {
		rv.ErrorLabel.Configure(Txt(msg))
	}
}
