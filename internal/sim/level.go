package sim

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Door is an interactive doorway supplied by the level author. The simulation
// never computes these; it only reads them.
type Door struct {
	Bounds Rect   `json:"bounds"`
	Target string `json:"target"` // environment id the door leads to
}

// Level is the read-only environment geometry the simulation runs in:
// play-area bounds, the ground plane, and authored platform rectangles.
// It is supplied by the host, never mutated by the core.
type Level struct {
	Name        string  `json:"name"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	FloorHeight float64 `json:"floorHeight"`
	Platforms   []Rect  `json:"platforms"`
	Doors       []Door  `json:"doors"`
}

// GroundY returns the Y coordinate of the ground plane surface.
func (l *Level) GroundY() float64 { return l.Height - l.FloorHeight }

// FloorFor returns the Y position that rests an entity of the given height
// with its feet on the ground plane.
func (l *Level) FloorFor(height float64) float64 { return l.GroundY() - height }

// InBounds reports whether a point lies inside the play area.
func (l *Level) InBounds(x, y float64) bool {
	return x >= 0 && x <= l.Width && y >= 0 && y <= l.Height
}

// DefaultLevel returns the standard street environment used when the host
// does not supply one.
func DefaultLevel() *Level {
	return &Level{
		Name:        "streets",
		Width:       1000,
		Height:      600,
		FloorHeight: 30,
		Platforms: []Rect{
			{X: 250, Y: 430, W: 160, H: 20},
			{X: 560, Y: 360, W: 180, H: 20},
		},
	}
}
