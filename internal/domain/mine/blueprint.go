package mine

// NoLadderRock marks a blueprint whose ladder is not hidden inside a rock.
const NoLadderRock = -1

type RockSpec struct {
	Pos        GridPos   `json:"pos"`
	Health     int       `json:"health"`
	Drop       ItemStack `json:"drop"`
	LadderHost bool      `json:"ladder_host"`
}

type EnemySpec struct {
	Pos       GridPos   `json:"pos"`
	Kind      EnemyKind `json:"kind"`
	Health    float64   `json:"health"`
	MaxHealth float64   `json:"max_health"`
	Damage    float64   `json:"damage"`
	Speed     float64   `json:"speed"`
}

// FloorBlueprint is the immutable description of one generated floor. It is
// rebuilt from the floor number whenever needed and never stored.
type FloorBlueprint struct {
	Floor           int         `json:"floor"`
	Rocks           []RockSpec  `json:"rocks"`
	Enemies         []EnemySpec `json:"enemies"`
	LadderPos       GridPos     `json:"ladder_pos"`
	LadderHidden    bool        `json:"ladder_hidden"`
	LadderRockIndex int         `json:"ladder_rock_index"`
	SpawnPos        GridPos     `json:"spawn_pos"`
}

func (b FloorBlueprint) LadderRock() (RockSpec, bool) {
	if b.LadderRockIndex < 0 || b.LadderRockIndex >= len(b.Rocks) {
		return RockSpec{}, false
	}
	return b.Rocks[b.LadderRockIndex], true
}
