package bvh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesBytesLayout(t *testing.T) {
	boxes := []AABB{
		{Min: mgl32.Vec3{-100, -1, -1}, Max: mgl32.Vec3{-98, 1, 1}},
		{Min: mgl32.Vec3{100, -1, -1}, Max: mgl32.Vec3{102, 1, 1}},
	}
	cfg := DefaultConfig()
	cfg.MaxLeafSize, cfg.MaxBlockSize, cfg.BranchingFactor = 1, 1, 2
	tree, err := Build(boxes, cfg)
	require.NoError(t, err)

	data := tree.NodesBytes()
	// Header plus one node of 2 slots
	require.Len(t, data, HeaderSize+NodeSize(2))

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off : off+4]) }
	f32 := func(off int) float32 { return math.Float32frombits(u32(off)) }

	assert.Equal(t, uint32(0), u32(0))
	assert.Equal(t, InteriorCount, u32(4))
	assert.Equal(t, uint32(2), u32(8))
	assert.Equal(t, uint32(1), u32(12))

	node := HeaderSize
	// max_x follows the three min arrays.
	minX := []float32{f32(node), f32(node + 4)}
	maxX := []float32{f32(node + 24), f32(node + 28)}
	assert.ElementsMatch(t, []float32{-100, 100}, minX)
	assert.ElementsMatch(t, []float32{-98, 102}, maxX)

	children := node + 48
	for slot := 0; slot < 2; slot++ {
		count := u32(children + slot*8 + 4)
		assert.Equal(t, uint32(1), count, "slot %d should be a single primitive leaf", slot)
	}

	assert.Equal(t, data[HeaderSize:], tree.Nodes()[0].ToBytes(2))
}

func TestNodesBytesRootLeaf(t *testing.T) {
	tree, err := Build([]AABB{{Max: mgl32.Vec3{1, 1, 1}}}, DefaultConfig())
	require.NoError(t, err)

	data := tree.NodesBytes()
	require.Len(t, data, HeaderSize)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[12:16]))
}
