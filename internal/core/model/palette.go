package model

// FallbackColor is used wherever a palette index runs past the end.
const FallbackColor = "#fff"

// Palette is assigned by creation order to surname nodes and, independently,
// by enumeration order to clusters. "#408080" appears twice.
var Palette = []string{
	"#408080", "#fe7f2d", "#fcca46", "#a1c181", "#000080", "#a53860", "#dcc9b6",
	"#5c7457", "#8b4c39", "#1a5276", "#e74c3c", "#27ae60", "#3498db", "#780116",
	"#f39c12", "#8e44ad", "#d35400", "#333d29", "#2ecc71", "#008000", "#008080",
	"#800000", "#800080", "#808000", "#808080", "#0000c0", "#008040", "#0080c0",
	"#800040", "#8000c0", "#808040", "#8080c0", "#004000", "#004080", "#00c000",
	"#00c080", "#804000", "#804080", "#80c000", "#80c080", "#004040", "#0040c0",
	"#00c040", "#00c0c0", "#804040", "#8040c0", "#80c040", "#80c0c0", "#400000",
	"#400080", "#408000", "#408080", "#c00000", "#233d4d", "#c00080", "#c08000",
	"#c08080", "#400040", "#4000c0", "#408040", "#4080c0", "#c00040", "#c000c0",
	"#c08040", "#c080c0", "#404000", "#404080",
}

// PaletteColor returns the i-th palette entry, or "" once the palette is exhausted.
func PaletteColor(i int) string {
	if i < 0 || i >= len(Palette) {
		return ""
	}
	return Palette[i]
}

// ColorOr returns c, or FallbackColor when c is empty.
func ColorOr(c string) string {
	if c == "" {
		return FallbackColor
	}
	return c
}
