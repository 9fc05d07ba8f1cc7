package habit

// Track colors are symbolic names resolved against a fixed palette.
// Storing the name rather than a concrete color value keeps snapshots
// stable when the rendering layer retunes its theme.

// DefaultColor is used when a caller supplies an unknown color name.
const DefaultColor = "rose"

// palette maps symbolic color names to their hex values.
var palette = map[string]string{
	"purple":  "#c084fc",
	"pink":    "#f472b6",
	"orange":  "#fb923c",
	"emerald": "#34d399",
	"rose":    "#f43f5e",
	"sky":     "#38bdf8",
	"amber":   "#fbbf24",
}

// ValidColor reports whether name is part of the fixed palette.
func ValidColor(name string) bool {
	_, ok := palette[name]
	return ok
}

// ColorHex resolves a symbolic color name to its hex value.
// Unknown names resolve to the default color.
func ColorHex(name string) string {
	if hex, ok := palette[name]; ok {
		return hex
	}
	return palette[DefaultColor]
}

// PaletteNames returns the symbolic color names in stable order.
func PaletteNames() []string {
	return []string{"purple", "pink", "orange", "emerald", "rose", "sky", "amber"}
}
