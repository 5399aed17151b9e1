package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/vova616/screenshot"

	"github.com/soocke/spectator-recorder/config"
	"github.com/soocke/spectator-recorder/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// SelectionOverlay manages the transparent window the user drags and resizes
// over the screen region to record.
type SelectionOverlay interface {
	OpenOrFocus()
	Clear()
}

type selectionOverlay struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	model   *model.SelectionModel
	win     *ToplevelWidget
}

// NewSelectionOverlay creates a new overlay manager writing into m.
func NewSelectionOverlay(m *model.SelectionModel, cfg *config.Config, cfgPath string, logger *slog.Logger) SelectionOverlay {
	return &selectionOverlay{logger: logger, cfg: cfg, cfgPath: cfgPath, model: m}
}

func (v *selectionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Recording Region")
	v.win = win
	x, y, w, h := v.initialGeometry()
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", w, h, x, y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#dc2626"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#dc2626"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Record this region [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	full := win.Button(Txt("Full screen"), Command(func() { v.Clear(); v.destroy() }))
	Grid(full, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

// initialGeometry reopens on the current selection, or centred on the screen.
func (v *selectionOverlay) initialGeometry() (x, y, w, h int) {
	if r := v.model.Region(); !r.Empty() {
		return r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	}
	screenW, screenH := 1920, 1080
	if r, err := screenshot.ScreenRect(); err == nil && !r.Empty() {
		screenW, screenH = r.Dx(), r.Dy()
	}
	w, h = max(screenW*2/3, 1), max(screenH*5/9, 1)
	return (screenW - w) / 2, (screenH - h) / 2, w, h
}

func (v *selectionOverlay) Clear() {
	v.model.Clear()
	v.persist(image.Rectangle{})
}

func (v *selectionOverlay) confirm() {
	if v.win == nil {
		return
	}
	if rect, ok := parseGeometry(WmGeometry(v.win.Window)); ok {
		v.model.Set(rect)
		v.persist(rect)
		if v.logger != nil {
			v.logger.Info("recording region selected", "region", rect.String())
		}
	}
	v.destroy()
}

func (v *selectionOverlay) persist(r image.Rectangle) {
	if v.cfg == nil {
		return
	}
	v.cfg.SelectionX, v.cfg.SelectionY = r.Min.X, r.Min.Y
	v.cfg.SelectionW, v.cfg.SelectionH = r.Dx(), r.Dy()
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
}

func (v *selectionOverlay) cancel() { v.destroy() }

func (v *selectionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string into a screen rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
