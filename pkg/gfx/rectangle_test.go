package gfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glscope/pkg/gfx"
	"glscope/pkg/gfx/gltest"
)

// An indexed rectangle: two triangles sharing an edge.
func TestDrawRectangle(t *testing.T) {
	dev := gltest.New()

	vs, fs := newShaders(t, dev)
	prog, err := gfx.NewProgram(dev, vs, fs)
	require.NoError(t, err)
	vs.Delete()
	fs.Delete()
	defer prog.Delete()

	vertices := gfx.NewVBO(dev, quad, gfx.DynamicDraw)
	defer vertices.Delete()
	idxs := gfx.NewEBO(dev, []uint32{0, 1, 3, 1, 2, 3}, gfx.DynamicDraw)
	defer idxs.Delete()

	vao := gfx.NewVertexArray(dev)
	defer vao.Delete()
	require.NoError(t, vao.Attach(0, vertices, gfx.Layout{}))
	require.NoError(t, vao.AttachIndices(idxs))

	prog.Use()
	require.NoError(t, vao.DrawElements(gfx.Triangles))

	draws := dev.Draws()
	require.Len(t, draws, 1)
	d := draws[0]
	assert.Equal(t, gfx.Triangles, d.Mode)
	assert.Equal(t, vao.ID(), d.VAO)
	assert.Equal(t, prog.ID(), d.Program)
	assert.Equal(t, idxs.ID(), d.ElementBuffer)
	assert.Equal(t, gfx.UnsignedInt, d.Type)
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3}, d.Indices)

	unique := map[uint32]bool{}
	for _, i := range d.Indices {
		require.Less(t, int(i), vertices.Len())
		unique[i] = true
	}
	assert.Len(t, unique, 4)
	assert.Empty(t, dev.Errors())
}
