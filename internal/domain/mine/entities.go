package mine

import "github.com/google/uuid"

type TileKind string

const (
	TileFloor TileKind = "floor"
	TileWall  TileKind = "wall"
)

type Rock struct {
	ID         int
	Pos        GridPos
	Health     int
	MaxHealth  int
	Drop       ItemStack
	LadderHost bool
}

// Hit applies damage and reports whether the rock broke.
func (r *Rock) Hit(damage int) bool {
	if damage < 0 {
		damage = 0
	}
	if damage >= r.Health {
		r.Health = 0
	} else {
		r.Health -= damage
	}
	return r.Health == 0
}

type Enemy struct {
	ID        int
	Pos       GridPos
	Kind      EnemyKind
	Health    float64
	MaxHealth float64
	Damage    float64
	Speed     float64
	Move      Repeating
	Attack    Repeating
}

type Ladder struct {
	Pos      GridPos
	Revealed bool
}

type Exit struct {
	Pos GridPos
}

// Floor is the live, mutable state of the currently loaded floor. Everything
// it holds is discarded together on the next floor change.
type Floor struct {
	ID      uuid.UUID
	Number  int
	Tiles   [GridHeight][GridWidth]TileKind
	Rocks   map[GridPos]*Rock
	Enemies []*Enemy
	Ladder  Ladder
	Exit    Exit
}

// Walkable reports whether p is an open tile. Rocks and enemies are not
// considered.
func (f *Floor) Walkable(p GridPos) bool {
	return InBounds(p) && f.Tiles[p.Y][p.X] != TileWall
}

func (f *Floor) RockAt(p GridPos) (*Rock, bool) {
	r, ok := f.Rocks[p]
	return r, ok
}

func (f *Floor) RemoveRock(p GridPos) {
	delete(f.Rocks, p)
}

// EnemyAt returns the first enemy in spawn order standing on p.
func (f *Floor) EnemyAt(p GridPos) (*Enemy, bool) {
	for _, e := range f.Enemies {
		if e.Pos == p {
			return e, true
		}
	}
	return nil, false
}

func (f *Floor) RemoveEnemy(id int) bool {
	for i, e := range f.Enemies {
		if e.ID == id {
			f.Enemies = append(f.Enemies[:i], f.Enemies[i+1:]...)
			return true
		}
	}
	return false
}

// EntityCount is the number of entities on the floor: tiles, rocks,
// enemies, the ladder and the exit.
func (f *Floor) EntityCount() int {
	return GridWidth*GridHeight + len(f.Rocks) + len(f.Enemies) + 2
}
