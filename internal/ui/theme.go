package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Reel palette
var (
	colorReelBackground = color.RGBA{R: 8, G: 8, B: 8, A: 230}
	colorRowBackground  = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	colorRowBorder      = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	colorServerName     = color.RGBA{R: 128, G: 196, B: 255, A: 255} // light blue
	colorServerDetails  = color.RGBA{R: 255, G: 213, B: 79, A: 255}  // soft yellow
	colorMarker         = color.RGBA{R: 211, G: 47, B: 47, A: 255}   // red
	colorFaded          = color.RGBA{R: 158, G: 158, B: 158, A: 255}
	colorGold           = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	colorWinner         = color.RGBA{R: 46, G: 160, B: 67, A: 255}
)

// RouletteTheme forces a dark variant with casino accent colors
type RouletteTheme struct{}

// NewRouletteTheme creates the app theme
func NewRouletteTheme() fyne.Theme {
	return &RouletteTheme{}
}

// Color returns theme colors; the variant is pinned to dark
func (t *RouletteTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return colorWinner
	case theme.ColorNameError:
		return colorMarker
	case theme.ColorNameWarning:
		return colorGold
	case theme.ColorNamePrimary:
		return colorGold
	case theme.ColorNameBackground:
		return color.RGBA{R: 18, G: 18, B: 18, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 245, G: 245, B: 245, A: 255}
	}

	// Use default dark colors for everything else
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *RouletteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *RouletteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with a roomier slider track for the filter row
func (t *RouletteTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 5
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 26
	}

	return theme.DefaultTheme().Size(name)
}
