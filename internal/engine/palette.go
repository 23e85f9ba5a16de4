package engine

// defaultPalette is the fixed chart color cycle. Buckets without an
// explicit or remembered color take palette[index % len].
var defaultPalette = []string{
	"#4E79A7", // blue
	"#F28E2B", // orange
	"#E15759", // red
	"#76B7B2", // teal
	"#59A14F", // green
	"#EDC948", // yellow
	"#B07AA1", // purple
	"#FF9DA7", // pink
	"#9C755F", // brown
	"#BAB0AC", // gray
}

// PaletteColor returns the palette color for a bucket index, cycling when
// the index exceeds the palette size.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return defaultPalette[i%len(defaultPalette)]
}
