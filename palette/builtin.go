package palette

import "golang.org/x/text/cases"

// Built-in palettes.
var (
	Classic = NewPalette("Classic", []Stop{
		{0, 0, 7, 100},
		{0.16, 32, 107, 203},
		{0.42, 237, 255, 255},
		{0.6425, 255, 170, 0},
		{0.8575, 0, 2, 0},
		{1, 0, 7, 100},
	})

	Fire = NewPalette("Fire", []Stop{
		{0, 0, 0, 0},
		{0.25, 128, 0, 0},
		{0.5, 255, 128, 0},
		{0.75, 255, 255, 0},
		{1, 255, 255, 255},
	})

	Ocean = NewPalette("Ocean", []Stop{
		{0, 0, 0, 30},
		{0.3, 0, 50, 120},
		{0.6, 0, 150, 200},
		{0.8, 100, 220, 255},
		{1, 240, 255, 255},
	})

	Neon = NewPalette("Neon", []Stop{
		{0, 10, 0, 20},
		{0.2, 80, 0, 150},
		{0.4, 200, 0, 200},
		{0.6, 0, 200, 255},
		{0.8, 0, 255, 100},
		{1, 10, 0, 20},
	})

	Grayscale = NewPalette("Grayscale", []Stop{
		{0, 0, 0, 0},
		{1, 255, 255, 255},
	})
)

// Default returns the Classic palette.
func Default() *Palette {
	return Classic
}

// Builtin returns the built-in palettes in display order.
func Builtin() []*Palette {
	return []*Palette{Classic, Fire, Ocean, Neon, Grayscale}
}

// ByName looks up a built-in palette by its case-folded name.
func ByName(name string) (*Palette, bool) {
	fold := cases.Fold()
	want := fold.String(name)
	for _, p := range Builtin() {
		if fold.String(p.name) == want {
			return p, true
		}
	}
	return nil, false
}
