package world

// Direction represents a cardinal direction
type Direction int

// Direction constants. The order (+x, -x, +y, -y) matches the fixed order of
// Grid.Neighbours.
const (
	East Direction = iota
	West
	South
	North
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{East, West, South, North}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case East:
		return "East"
	case West:
		return "West"
	case South:
		return "South"
	case North:
		return "North"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= East && d <= North
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case East:
		return West
	case West:
		return East
	case South:
		return North
	case North:
		return South
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction. Y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case East:
		return 1, 0
	case West:
		return -1, 0
	case South:
		return 0, 1
	case North:
		return 0, -1
	default:
		return 0, 0
	}
}
