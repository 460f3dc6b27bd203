package mine

import (
	"fmt"
	"strings"
)

type EnemyKind string

const (
	EnemySlime EnemyKind = "slime"
	EnemyBat   EnemyKind = "bat"
	EnemyCrab  EnemyKind = "crab"
)

func (k EnemyKind) Valid() bool {
	_, ok := enemyProfiles[k]
	return ok
}

type ToolKind string

const (
	ToolHoe         ToolKind = "hoe"
	ToolWateringCan ToolKind = "watering_can"
	ToolAxe         ToolKind = "axe"
	ToolPickaxe     ToolKind = "pickaxe"
	ToolFishingRod  ToolKind = "fishing_rod"
	ToolScythe      ToolKind = "scythe"
)

type ToolTier int

const (
	TierBasic ToolTier = iota
	TierCopper
	TierIron
	TierGold
	TierIridium
)

var tierNames = [...]string{"basic", "copper", "iron", "gold", "iridium"}

func (t ToolTier) String() string {
	if t < TierBasic || t > TierIridium {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t ToolTier) Valid() bool {
	return t >= TierBasic && t <= TierIridium
}

func ParseToolTier(s string) (ToolTier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return ToolTier(i), nil
		}
	}
	return TierBasic, fmt.Errorf("unknown tool tier %q", s)
}

// MapID names destinations outside the mine. The mine itself never appears in
// outbound transitions.
type MapID string

const (
	MapMineEntrance MapID = "mine_entrance"
	MapPlayerHouse  MapID = "player_house"
)

const (
	ItemStone      = "stone"
	ItemCopperOre  = "copper_ore"
	ItemIronOre    = "iron_ore"
	ItemGoldOre    = "gold_ore"
	ItemQuartz     = "quartz"
	ItemDiamond    = "diamond"
	ItemRuby       = "ruby"
	ItemEmerald    = "emerald"
	ItemSlimeJelly = "slime_jelly"
	ItemBatWing    = "bat_wing"
	ItemCrabShell  = "crab_shell"
)

type ItemStack struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}
