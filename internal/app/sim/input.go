package sim

import "deepmine/internal/domain/mine"

// Input is the player's control state for one tick. Attack swings the
// equipped tool at the faced cell and never interacts; Confirm interacts with
// the ladder or exit. Slot selects an elevator stop, 1-based, with 0 meaning
// none.
type Input struct {
	MoveX   int  `json:"move_x"`
	MoveY   int  `json:"move_y"`
	Attack  bool `json:"attack"`
	Confirm bool `json:"confirm"`
	Cancel  bool `json:"cancel"`
	Slot    int  `json:"slot"`
	Blocked bool `json:"blocked"`
}

func (in Input) interact() bool {
	return in.Confirm
}

type ToolUse struct {
	Tool   mine.ToolKind `json:"tool"`
	Tier   mine.ToolTier `json:"tier"`
	Target mine.GridPos  `json:"target"`
}
