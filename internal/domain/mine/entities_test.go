package mine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorWalkable_FollowsTiles(t *testing.T) {
	f := &Floor{}
	f.Tiles[3][4] = TileWall

	assert.False(t, f.Walkable(GridPos{X: 4, Y: 3}))
	assert.True(t, f.Walkable(GridPos{X: 5, Y: 3}))
	assert.False(t, f.Walkable(GridPos{X: -1, Y: 3}))
	assert.False(t, f.Walkable(GridPos{X: 0, Y: GridHeight}))
}
