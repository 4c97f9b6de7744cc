package fractal

// Tile is a rectangular block of pixels rendered as one unit of work.
type Tile struct {
	X, Y          int
	Width, Height int
}

// PixelCount returns Width*Height.
func (t Tile) PixelCount() int {
	return t.Width * t.Height
}

// TileKind is the role of a tile under real-axis symmetry.
type TileKind uint8

const (
	// TileNormal tiles are rendered.
	TileNormal TileKind = iota
	// TilePrimary tiles are rendered and also supply their mirror.
	TilePrimary
	// TileMirror tiles are copied, row-flipped, from their primary.
	TileMirror
)

// String returns the kind name.
func (k TileKind) String() string {
	switch k {
	case TilePrimary:
		return "Primary"
	case TileMirror:
		return "Mirror"
	default:
		return "Normal"
	}
}

// ClassifiedTile is a tile with its symmetry role.
// Pair is the index of the partner tile (the mirror of a primary, or the
// primary of a mirror) and -1 for normal tiles.
type ClassifiedTile struct {
	Tile
	Kind TileKind
	Pair int
}

// BuildTileGrid partitions a width×height frame into TileSize tiles.
func BuildTileGrid(width, height int) []Tile {
	return BuildTileGridSize(width, height, TileSize)
}

// BuildTileGridSize partitions a frame into size×size tiles, row by row,
// left to right. The tiles cover the frame exactly; tiles on the right and
// bottom edges may be smaller.
func BuildTileGridSize(width, height, size int) []Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	if size <= 0 {
		size = TileSize
	}

	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	tiles := make([]Tile, 0, cols*rows)
	for y := 0; y < height; y += size {
		th := min(size, height-y)
		for x := 0; x < width; x += size {
			tw := min(size, width-x)
			tiles = append(tiles, Tile{X: x, Y: y, Width: tw, Height: th})
		}
	}
	return tiles
}

// BuildSymmetricTileGrid is BuildTileGrid with the tile rows laid out
// around the horizontal centerline.
func BuildSymmetricTileGrid(width, height int) []Tile {
	return BuildSymmetricTileGridSize(width, height, TileSize)
}

// BuildSymmetricTileGridSize partitions a frame into size×size tiles whose
// rows are cut outward from the horizontal centerline, so every row in the
// upper half has a row of the same height at y' = height − y − h. Partial
// rows land on the top and bottom edges. An odd height leaves a one-pixel
// row on the centerline. Tiles are ordered top to bottom, left to right.
func BuildSymmetricTileGridSize(width, height, size int) []Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	if size <= 0 {
		size = TileSize
	}

	type band struct{ y, h int }
	half := height / 2
	var upper []band
	for bottom := half; bottom > 0; bottom -= size {
		h := min(size, bottom)
		upper = append(upper, band{bottom - h, h})
	}

	rows := make([]band, 0, 2*len(upper)+1)
	for i := len(upper) - 1; i >= 0; i-- {
		rows = append(rows, upper[i])
	}
	if height%2 == 1 {
		rows = append(rows, band{half, 1})
	}
	for _, b := range upper {
		rows = append(rows, band{height - b.y - b.h, b.h})
	}

	cols := (width + size - 1) / size
	tiles := make([]Tile, 0, cols*len(rows))
	for _, r := range rows {
		for x := 0; x < width; x += size {
			tiles = append(tiles, Tile{X: x, Y: r.y, Width: min(size, width-x), Height: r.h})
		}
	}
	return tiles
}

// ClassifyTilesForSymmetry pairs tiles across the horizontal centerline.
//
// It applies only when centerIm is exactly zero; otherwise it returns
// (nil, false). Every tile lying entirely in the upper half whose exact
// mirror (same x and size at y' = height − y − tileHeight) exists in the
// grid becomes a Primary and the mirror becomes its Mirror. Tiles that
// straddle the centerline, or have no exact mirror, stay Normal.
func ClassifyTilesForSymmetry(tiles []Tile, height int, centerIm float64) ([]ClassifiedTile, bool) {
	if centerIm != 0 {
		return nil, false
	}

	index := make(map[Tile]int, len(tiles))
	classified := make([]ClassifiedTile, len(tiles))
	for i, t := range tiles {
		index[t] = i
		classified[i] = ClassifiedTile{Tile: t, Kind: TileNormal, Pair: -1}
	}

	// Compare in doubled pixels to keep odd heights exact.
	for i, t := range tiles {
		if 2*(t.Y+t.Height) > height {
			continue
		}
		mirror := Tile{X: t.X, Y: height - t.Y - t.Height, Width: t.Width, Height: t.Height}
		j, ok := index[mirror]
		if !ok || j == i {
			continue
		}
		classified[i].Kind, classified[i].Pair = TilePrimary, j
		classified[j].Kind, classified[j].Pair = TileMirror, i
	}
	return classified, true
}

// unclassified wraps tiles as Normal.
func unclassified(tiles []Tile) []ClassifiedTile {
	out := make([]ClassifiedTile, len(tiles))
	for i, t := range tiles {
		out[i] = ClassifiedTile{Tile: t, Kind: TileNormal, Pair: -1}
	}
	return out
}
