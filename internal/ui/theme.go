package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ThemeNames lists the values accepted for AppConfig.Theme.
var ThemeNames = []string{"system", "light", "dark"}

// FacerTheme wraps the default Fyne theme with compact sizing overrides
// for a dense calculator layout.
type FacerTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool // follow the variant requested by the OS
}

// NewFacerTheme creates a FacerTheme for a config theme name.
func NewFacerTheme(name string) *FacerTheme {
	t := &FacerTheme{base: theme.DefaultTheme()}
	t.SetMode(name)
	return t
}

// SetMode switches between "light", "dark" and "system". Unknown names
// follow the OS.
func (t *FacerTheme) SetMode(name string) {
	switch name {
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	case "light":
		t.variant, t.system = theme.VariantLight, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme with the selected variant.
func (t *FacerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *FacerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *FacerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *FacerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
