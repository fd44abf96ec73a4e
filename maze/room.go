package maze

import "fmt"

// Wall identifies one side of a room. The order matches the persisted record layout.
type Wall int

// Wall sides, in persisted order.
const (
	Top Wall = iota
	Right
	Bottom
	Left
)

// Walls lists every side in persisted order.
var Walls = [4]Wall{Top, Right, Bottom, Left}

var wallDeltas = [4]Point{
	Top:    {X: 0, Y: -1},
	Right:  {X: 1, Y: 0},
	Bottom: {X: 0, Y: 1},
	Left:   {X: -1, Y: 0},
}

// Valid reports whether w is one of the four sides.
func (w Wall) Valid() bool {
	return w >= Top && w <= Left
}

// Opposite returns the side facing back from the neighbor across w.
func (w Wall) Opposite() Wall {
	return (w + 2) % 4
}

// Delta returns the coordinate offset of the neighbor across w.
func (w Wall) Delta() Point {
	return wallDeltas[w]
}

// String returns the side name.
func (w Wall) String() string {
	switch w {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return fmt.Sprintf("wall(%d)", int(w))
}

// Room represents a single cell in a maze grid.
type Room struct {
	Walls [4]bool // Walls holds the closed flag of each side, indexed by Wall.
}

// NewRoom returns a room with every wall closed.
func NewRoom() Room {
	return Room{Walls: [4]bool{true, true, true, true}}
}

// HasWall reports whether side w is closed.
func (r Room) HasWall(w Wall) bool {
	return r.Walls[w]
}

// HasTopWall returns true if there is a wall on the top side of the room.
func (r Room) HasTopWall() bool {
	return r.Walls[Top]
}

// HasRightWall returns true if there is a wall on the right side of the room.
func (r Room) HasRightWall() bool {
	return r.Walls[Right]
}

// HasBottomWall returns true if there is a wall on the bottom side of the room.
func (r Room) HasBottomWall() bool {
	return r.Walls[Bottom]
}

// HasLeftWall returns true if there is a wall on the left side of the room.
func (r Room) HasLeftWall() bool {
	return r.Walls[Left]
}

// SetWall sets the closed flag of side w.
func (r *Room) SetWall(w Wall, closed bool) {
	r.Walls[w] = closed
}

// Point is a grid coordinate: X is the column, Y is the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
