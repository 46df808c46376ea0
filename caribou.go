package caribou

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D float vector used for positions, sizes and offsets.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Point truncates both components toward zero.
func (v Vec2) Point() Point {
	return Point{int(v.X), int(v.Y)}
}

// Point is a 2D integer vector. Pointer positions are delivered as Points.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{x, y}
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

// Scale multiplies both components by k.
func (p Point) Scale(k int) Point {
	return Point{p.X * k, p.Y * k}
}

func (p Point) Vec2() Vec2 {
	return Vec2{float64(p.X), float64(p.Y)}
}

// Region is an axis-aligned rectangle anchored at Origin. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Region struct {
	Origin Vec2
	Size   Vec2
}

// RegionOf returns the region anchored at origin with the given size.
func RegionOf(origin, size Vec2) Region {
	return Region{Origin: origin, Size: size}
}

// RegionBetween returns the region spanning begin to end.
func RegionBetween(begin, end Vec2) Region {
	return Region{Origin: begin, Size: end.Sub(begin)}
}

// End returns the corner opposite Origin.
func (r Region) End() Vec2 {
	return r.Origin.Add(r.Size)
}

// Contains reports whether p lies inside the region. The min edge is
// inclusive and the max edge exclusive on both axes.
func (r Region) Contains(p Vec2) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.X &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Y
}

// ContainsRegion reports whether both corners of o lie inside r.
func (r Region) ContainsRegion(o Region) bool {
	return r.Contains(o.Origin) && r.Contains(o.End())
}

// Intersects reports whether either region contains a corner of the other.
func (r Region) Intersects(o Region) bool {
	return r.Contains(o.Origin) || r.Contains(o.End()) ||
		o.Contains(r.Origin) || o.Contains(r.End())
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonPrimary   MouseButton = iota // left button
	MouseButtonSecondary                    // right button
	MouseButtonTertiary                     // middle button (scroll wheel click)
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonPrimary:
		return "primary"
	case MouseButtonSecondary:
		return "secondary"
	case MouseButtonTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of m are set.
func (k KeyModifiers) Has(m KeyModifiers) bool {
	return k&m == m
}
