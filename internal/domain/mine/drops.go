package mine

import "math/rand/v2"

type qtyRange struct{ min, max int }

func (r qtyRange) roll(rng *rand.Rand) int {
	if r.max <= r.min {
		return r.min
	}
	return rangeIncl(rng, r.min, r.max)
}

type rockDrop struct {
	upTo   float64 // cumulative roll threshold
	item   string
	qty    qtyRange
	health qtyRange
}

type rockBand struct {
	lastFloor int
	drops     []rockDrop
}

var stoneDrop = rockDrop{upTo: 1, item: ItemStone, qty: qtyRange{1, 3}, health: qtyRange{2, 2}}

// rockBands are checked in order; the last band covers everything deeper.
var rockBands = []rockBand{
	{lastFloor: 5, drops: []rockDrop{
		{upTo: 0.20, item: ItemCopperOre, qty: qtyRange{1, 2}, health: qtyRange{2, 3}},
		stoneDrop,
	}},
	{lastFloor: 10, drops: []rockDrop{
		{upTo: 0.15, item: ItemIronOre, qty: qtyRange{1, 2}, health: qtyRange{3, 4}},
		{upTo: 0.45, item: ItemCopperOre, qty: qtyRange{1, 2}, health: qtyRange{2, 3}},
		stoneDrop,
	}},
	{lastFloor: 15, drops: []rockDrop{
		{upTo: 0.05, item: ItemQuartz, qty: qtyRange{1, 1}, health: qtyRange{3, 3}},
		{upTo: 0.15, item: ItemGoldOre, qty: qtyRange{1, 2}, health: qtyRange{4, 4}},
		{upTo: 0.45, item: ItemIronOre, qty: qtyRange{1, 2}, health: qtyRange{3, 3}},
		stoneDrop,
	}},
	{lastFloor: MaxFloor, drops: []rockDrop{
		{upTo: 0.02, item: ItemEmerald, qty: qtyRange{1, 1}, health: qtyRange{4, 4}},
		{upTo: 0.04, item: ItemRuby, qty: qtyRange{1, 1}, health: qtyRange{4, 4}},
		{upTo: 0.07, item: ItemDiamond, qty: qtyRange{1, 1}, health: qtyRange{4, 4}},
		{upTo: 0.32, item: ItemGoldOre, qty: qtyRange{1, 2}, health: qtyRange{4, 4}},
		stoneDrop,
	}},
}

func rockBandFor(floor int) rockBand {
	for _, b := range rockBands {
		if floor <= b.lastFloor {
			return b
		}
	}
	return rockBands[len(rockBands)-1]
}

// rollRockDrop picks what a rock on floor yields and how tough it is.
func rollRockDrop(floor int, rng *rand.Rand) (ItemStack, int) {
	roll := rng.Float64()
	band := rockBandFor(floor)
	d := band.drops[len(band.drops)-1]
	for _, cand := range band.drops {
		if roll < cand.upTo {
			d = cand
			break
		}
	}
	qty := d.qty.roll(rng)
	return ItemStack{ItemID: d.item, Quantity: qty}, d.health.roll(rng)
}

type lootEntry struct {
	upTo float64
	item string
	qty  qtyRange
}

// Each table ends with a stone entry and carries one rare trophy item.
var enemyLootTables = map[EnemyKind][]lootEntry{
	EnemySlime: {
		{upTo: 0.30, item: ItemSlimeJelly, qty: qtyRange{1, 2}},
		{upTo: 0.50, item: ItemCopperOre, qty: qtyRange{1, 1}},
		{upTo: 1, item: ItemStone, qty: qtyRange{1, 3}},
	},
	EnemyBat: {
		{upTo: 0.25, item: ItemBatWing, qty: qtyRange{1, 1}},
		{upTo: 0.50, item: ItemIronOre, qty: qtyRange{1, 1}},
		{upTo: 0.70, item: ItemCopperOre, qty: qtyRange{1, 2}},
		{upTo: 1, item: ItemStone, qty: qtyRange{1, 2}},
	},
	EnemyCrab: {
		{upTo: 0.20, item: ItemCrabShell, qty: qtyRange{1, 1}},
		{upTo: 0.45, item: ItemGoldOre, qty: qtyRange{1, 1}},
		{upTo: 0.65, item: ItemIronOre, qty: qtyRange{1, 2}},
		{upTo: 1, item: ItemStone, qty: qtyRange{2, 4}},
	},
}

// RollEnemyLoot picks the drop for a defeated enemy of kind.
func RollEnemyLoot(kind EnemyKind, rng *rand.Rand) ItemStack {
	table, ok := enemyLootTables[kind]
	if !ok {
		table = enemyLootTables[EnemySlime]
	}
	roll := rng.Float64()
	e := table[len(table)-1]
	for _, cand := range table {
		if roll < cand.upTo {
			e = cand
			break
		}
	}
	return ItemStack{ItemID: e.item, Quantity: e.qty.roll(rng)}
}
