package mine

const (
	GridWidth  = 24
	GridHeight = 24

	MinFloor = 1
	MaxFloor = 20

	ElevatorInterval = 5
)

type GridPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	// SpawnPos is where the player appears on every floor, just above the exit.
	SpawnPos = GridPos{X: GridWidth / 2, Y: 1}
	ExitPos  = GridPos{X: GridWidth / 2, Y: 0}
)

func (p GridPos) Add(d Direction) GridPos {
	dx, dy := d.Delta()
	return GridPos{X: p.X + dx, Y: p.Y + dy}
}

func (p GridPos) Manhattan(o GridPos) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// InBounds reports whether p lies anywhere on the floor grid, walls included.
func InBounds(p GridPos) bool {
	return p.X >= 0 && p.X < GridWidth && p.Y >= 0 && p.Y < GridHeight
}

// Walkable reports whether p is inside the wall ring. The bottom row is open
// because the exit sits on it.
func Walkable(p GridPos) bool {
	return p.X >= 1 && p.X < GridWidth-1 && p.Y >= 0 && p.Y < GridHeight-1
}

func IsWall(p GridPos) bool {
	return p.X == 0 || p.X == GridWidth-1 || p.Y == GridHeight-1
}

type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// DirectionFromAxis resolves a movement axis into a single step. Vertical input
// wins when both axes are held.
func DirectionFromAxis(x, y int) (Direction, bool) {
	switch {
	case y > 0:
		return DirUp, true
	case y < 0:
		return DirDown, true
	case x < 0:
		return DirLeft, true
	case x > 0:
		return DirRight, true
	default:
		return "", false
	}
}

func ClampFloor(floor int) int {
	if floor < MinFloor {
		return MinFloor
	}
	if floor > MaxFloor {
		return MaxFloor
	}
	return floor
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// GreedySteps returns the two candidate cells an enemy at from may step into
// when chasing to: first along the axis with the larger distance, then along
// the other one. Ties favour the horizontal axis.
func GreedySteps(from, to GridPos) [2]GridPos {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if abs(dx) >= abs(dy) {
		return [2]GridPos{
			{X: from.X + sign(dx), Y: from.Y},
			{X: from.X, Y: from.Y + sign(dy)},
		}
	}
	return [2]GridPos{
		{X: from.X, Y: from.Y + sign(dy)},
		{X: from.X + sign(dx), Y: from.Y},
	}
}
