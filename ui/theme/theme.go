// Package theme holds the recorder palette and the ttk styles built from it.
package theme

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PaletteSnapshot holds resolved colors for one mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = PaletteSnapshot{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = PaletteSnapshot{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

var darkMode bool

// CurrentPalette returns colors for the current mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return dark
	}
	return light
}

// InitStyles activates the base theme and configures the recorder styles.
func InitStyles(useDark bool) {
	darkMode = useDark
	p := CurrentPalette()
	if useDark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStateLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
