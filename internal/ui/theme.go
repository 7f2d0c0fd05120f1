package ui

import (
	"image/color"

	"Encrypty/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme is the Encrypty look: default fonts and icons, higher-contrast text
// and inputs, and banner colors shared with the HTML results page.
type Theme struct{}

var _ fyne.Theme = (*Theme)(nil)

// NewTheme creates the Encrypty theme.
func NewTheme() fyne.Theme {
	return &Theme{}
}

// Color returns the color for the specified name and variant.
func (t *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return util.GREEN
	case theme.ColorNameError:
		return util.RED
	case theme.ColorNameHyperlink:
		if variant == theme.VariantLight {
			return color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
		}
		return color.RGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}
	case theme.ColorNameForeground:
		if variant == theme.VariantLight {
			return color.RGBA{R: 0x1a, G: 0x23, B: 0x32, A: 0xff}
		}
		return color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	case theme.ColorNameInputBorder:
		if variant == theme.VariantLight {
			return color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
		}
		return color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

// Font returns the font resource for the specified text style.
func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified name.
func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the specified name.
func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameInputBorder:
		return 2 // Default is 1
	default:
		return theme.DefaultTheme().Size(name)
	}
}
