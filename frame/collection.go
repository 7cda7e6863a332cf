package frame

import "github.com/asterion-dev/pipekit/data"

// Collection is an ordered set of frames. It satisfies data.Collection, so
// a record carrying one can fan out into per-frame work.
type Collection []*Frame

var _ data.Collection = Collection(nil)

// Len returns the number of frames.
func (c Collection) Len() int { return len(c) }

// Item returns the i'th frame.
func (c Collection) Item(i int) any { return c[i] }

// Tile is a frame cut from a larger one, tagged with where it came from so
// per-tile results can be mapped back onto the source geometry.
type Tile struct {
	*Frame
	// X and Y locate the tile's top-left corner in the source frame.
	X, Y int
	// Row and Col are the tile's position in the cutting grid.
	Row, Col int
}

// Tiles is a collection of tiles cut from one frame.
type Tiles []*Tile

var _ data.Collection = Tiles(nil)

// Len returns the number of tiles.
func (t Tiles) Len() int { return len(t) }

// Item returns the i'th tile.
func (t Tiles) Item(i int) any { return t[i] }
