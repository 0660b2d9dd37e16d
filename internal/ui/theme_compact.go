package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactTheme forces the dark variant and halves the inline icon size,
// which fyne also uses for slider thumbs, so controls fit the ticker strip.
type compactTheme struct{ fyne.Theme }

func (t compactTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, theme.VariantDark)
}

func (t compactTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameInlineIcon {
		return t.Theme.Size(n) * 0.5
	}
	return t.Theme.Size(n)
}

// UseCompactTheme applies the theme wrapper to the current app.
func UseCompactTheme() {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	app.Settings().SetTheme(compactTheme{Theme: theme.DefaultTheme()})
}
