package mine

import (
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// FloorSeed derives the generator seed from the floor number alone, so a
// floor looks the same every time it is visited.
func FloorSeed(floor int) uint64 {
	return uint64(floor)*7919 + 42
}

func newFloorRand(floor int) *rand.Rand {
	seed := FloorSeed(floor)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateFloor builds the blueprint for floor. Floors below 1 are treated as
// floor 1; floors above the playable range keep using the deepest drop band.
func GenerateFloor(floor int) FloorBlueprint {
	if floor < MinFloor {
		floor = MinFloor
	}
	rng := newFloorRand(floor)
	spawn := SpawnPos

	occupied := mapset.New[GridPos]()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			occupied.Put(GridPos{X: spawn.X + dx, Y: spawn.Y + dy})
		}
	}
	for x := 0; x < GridWidth; x++ {
		occupied.Put(GridPos{X: x, Y: 0})
	}

	rocks := placeRocks(floor, rng, occupied)
	ladderPos, hidden, ladderIdx := placeLadder(rng, rocks, occupied)
	enemies := placeEnemies(floor, rng, occupied)

	return FloorBlueprint{
		Floor:           floor,
		Rocks:           rocks,
		Enemies:         enemies,
		LadderPos:       ladderPos,
		LadderHidden:    hidden,
		LadderRockIndex: ladderIdx,
		SpawnPos:        spawn,
	}
}

func placeRocks(floor int, rng *rand.Rand, occupied mapset.Set[GridPos]) []RockSpec {
	coverage := RockCoverageMin + rng.Float64()*(RockCoverageMax-RockCoverageMin)
	target := int(float64(GridWidth*GridHeight) * coverage)

	rocks := make([]RockSpec, 0, target)
	for attempts := 0; len(rocks) < target && attempts < target*RockAttemptFactor; attempts++ {
		pos := GridPos{
			X: rangeInt(rng, 1, GridWidth-1),
			Y: rangeInt(rng, 2, GridHeight-1),
		}
		if occupied.Has(pos) {
			continue
		}
		occupied.Put(pos)
		drop, health := rollRockDrop(floor, rng)
		rocks = append(rocks, RockSpec{Pos: pos, Health: health, Drop: drop})
	}
	return rocks
}

func placeLadder(rng *rand.Rand, rocks []RockSpec, occupied mapset.Set[GridPos]) (GridPos, bool, int) {
	if rng.Float64() < HiddenLadderChance && len(rocks) > 0 {
		upper := make([]int, 0, len(rocks))
		for i, r := range rocks {
			if r.Pos.Y >= GridHeight/2 {
				upper = append(upper, i)
			}
		}
		var idx int
		if len(upper) > 0 {
			idx = upper[rng.IntN(len(upper))]
		} else {
			idx = rng.IntN(len(rocks))
		}
		rocks[idx].LadderHost = true
		return rocks[idx].Pos, true, idx
	}

	var pos GridPos
	for attempts := 1; ; attempts++ {
		pos = GridPos{
			X: rangeInt(rng, 2, GridWidth-2),
			Y: rangeInt(rng, GridHeight/2, GridHeight-2),
		}
		if !occupied.Has(pos) || attempts >= OpenLadderAttempts {
			break
		}
	}
	occupied.Put(pos)
	return pos, false, NoLadderRock
}

func placeEnemies(floor int, rng *rand.Rand, occupied mapset.Set[GridPos]) []EnemySpec {
	count := enemyCount(floor, rng)
	enemies := make([]EnemySpec, 0, count)
	for attempts := 0; len(enemies) < count && attempts < count*EnemyAttemptFactor; attempts++ {
		pos := GridPos{
			X: rangeInt(rng, 2, GridWidth-2),
			Y: rangeInt(rng, 3, GridHeight-2),
		}
		if occupied.Has(pos) {
			continue
		}
		occupied.Put(pos)
		enemies = append(enemies, NewEnemySpec(pickEnemyKind(floor, rng), floor, pos))
	}
	return enemies
}

func enemyCount(floor int, rng *rand.Rand) int {
	n := EnemyBaseCount + floor/EnemyFloorsPerExtra + rng.IntN(2)
	if n > EnemyMaxCount {
		return EnemyMaxCount
	}
	return n
}

func pickEnemyKind(floor int, rng *rand.Rand) EnemyKind {
	roll := rng.Float64()
	switch {
	case floor < 5:
		return EnemySlime
	case floor < 10:
		if roll < 0.6 {
			return EnemySlime
		}
		return EnemyBat
	default:
		switch {
		case roll < 0.35:
			return EnemySlime
		case roll < 0.65:
			return EnemyBat
		default:
			return EnemyCrab
		}
	}
}

// NewEnemySpec scales the kind's base stats to the floor.
func NewEnemySpec(kind EnemyKind, floor int, pos GridPos) EnemySpec {
	p, ok := enemyProfiles[kind]
	if !ok {
		kind = EnemySlime
		p = enemyProfiles[EnemySlime]
	}
	f := float64(floor)
	return EnemySpec{
		Pos:       pos,
		Kind:      kind,
		Health:    p.baseHealth + f,
		MaxHealth: p.baseHealth + f,
		Damage:    p.baseDamage + f/2,
		Speed:     p.speed,
	}
}

// rangeInt returns a value in [lo, hi).
func rangeInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo)
}

// rangeIncl returns a value in [lo, hi].
func rangeIncl(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
