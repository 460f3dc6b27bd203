package mine

import "time"

const (
	PlayerMoveCooldown   = 150 * time.Millisecond
	PlayerInvincibility  = 500 * time.Millisecond
	EnemyAttackCooldown  = 1 * time.Second
	RockCoverageMin      = 0.40
	RockCoverageMax      = 0.60
	RockAttemptFactor    = 4
	HiddenLadderChance   = 0.6
	OpenLadderAttempts   = 100
	EnemyAttemptFactor   = 10
	EnemyBaseCount       = 2
	EnemyFloorsPerExtra  = 4
	EnemyMaxCount        = 6
	KnockoutGoldLossRate = 10 // percent
	RecoveryHealthRatio  = 0.5
)

const (
	ReasonKnockout = "Knocked out in the mine"
	ReasonPassout  = "Passed out in the mine"
)

// Destinations for leaving the mine.
var (
	KnockoutDestination = Destination{Map: MapMineEntrance, Pos: GridPos{X: 7, Y: 4}}
	ExitDestination     = Destination{Map: MapMineEntrance, Pos: GridPos{X: 12, Y: 12}}
	PassoutDestination  = Destination{Map: MapPlayerHouse, Pos: GridPos{X: 5, Y: 5}}
)

type Destination struct {
	Map MapID
	Pos GridPos
}

const (
	SfxRockHit    = "mine_rock_hit"
	SfxRockBreak  = "mine_rock_break"
	SfxEnemyHit   = "mine_enemy_hit"
	SfxEnemyDie   = "mine_enemy_die"
	SfxPlayerHurt = "player_hurt"
	SfxKnockout   = "player_knockout"
	SfxDescend    = "mine_descend"
	SfxExit       = "mine_exit"
	SfxElevator   = "mine_elevator"
	SfxEnter      = "mine_enter"

	MusicMineAmbient = "mine_ambient"
)

type enemyProfile struct {
	baseHealth   float64
	baseDamage   float64
	speed        float64
	moveInterval time.Duration
}

// Health and damage grow by one point and half a point per floor respectively.
var enemyProfiles = map[EnemyKind]enemyProfile{
	EnemySlime: {baseHealth: 20, baseDamage: 5, speed: 24, moveInterval: 1000 * time.Millisecond},
	EnemyBat:   {baseHealth: 15, baseDamage: 8, speed: 48, moveInterval: 500 * time.Millisecond},
	EnemyCrab:  {baseHealth: 40, baseDamage: 12, speed: 16, moveInterval: 1500 * time.Millisecond},
}

func EnemyMoveInterval(kind EnemyKind) time.Duration {
	if p, ok := enemyProfiles[kind]; ok {
		return p.moveInterval
	}
	return enemyProfiles[EnemySlime].moveInterval
}

var pickaxeRockDamage = map[ToolTier]int{
	TierBasic:   1,
	TierCopper:  1,
	TierIron:    2,
	TierGold:    3,
	TierIridium: 4,
}

var pickaxeStaminaCost = map[ToolTier]float64{
	TierBasic:   4.0,
	TierCopper:  3.5,
	TierIron:    3.0,
	TierGold:    2.5,
	TierIridium: 2.0,
}

var playerAttackDamage = map[ToolTier]float64{
	TierBasic:   10,
	TierCopper:  15,
	TierIron:    20,
	TierGold:    30,
	TierIridium: 50,
}

// RockDamage is how much health one pickaxe swing removes from a rock.
func RockDamage(tier ToolTier) int {
	if d, ok := pickaxeRockDamage[tier]; ok {
		return d
	}
	return pickaxeRockDamage[TierBasic]
}

func StaminaCost(tier ToolTier) float64 {
	if c, ok := pickaxeStaminaCost[tier]; ok {
		return c
	}
	return pickaxeStaminaCost[TierBasic]
}

func AttackDamage(tier ToolTier) float64 {
	if d, ok := playerAttackDamage[tier]; ok {
		return d
	}
	return playerAttackDamage[TierBasic]
}

// KnockoutGoldLoss is the gold forfeited on knockout or passout, rounded down.
func KnockoutGoldLoss(gold int) int {
	if gold <= 0 {
		return 0
	}
	return gold * KnockoutGoldLossRate / 100
}
