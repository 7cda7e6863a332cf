package data

// Type classifies the payload a record carries. It is used only to decide
// link compatibility during dependency resolution.
type Type string

const (
	// TypeFrame is a single two-dimensional image frame.
	TypeFrame Type = "frame"
	// TypeFrameCollection is an ordered set of frames that may fan out
	// into per-item work.
	TypeFrameCollection Type = "frame_collection"
	// TypeTable is row/column shaped data such as detection descriptors.
	TypeTable Type = "table"
)

// Collection is implemented by payloads that can fan out element by element.
type Collection interface {
	// Len returns the number of elements.
	Len() int
	// Item returns the i'th element.
	Item(i int) any
}

// Tabular is implemented by row/column shaped payloads.
type Tabular interface {
	// Columns returns the ordered column names.
	Columns() []string
}

// TypeOf infers the data type of a payload value. Values implementing
// Collection are frame collections, values implementing Tabular are tables,
// and everything else is treated as a single frame.
func TypeOf(v any) Type {
	switch v.(type) {
	case Collection:
		return TypeFrameCollection
	case Tabular:
		return TypeTable
	default:
		return TypeFrame
	}
}
