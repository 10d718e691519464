package gfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glscope/pkg/gfx"
	"glscope/pkg/gfx/gltest"
)

func TestEnable(t *testing.T) {
	dev := gltest.New()
	func() {
		defer gfx.Enable(dev, gfx.Blend)()
		assert.True(t, dev.IsEnabled(gfx.Blend))
	}()
	assert.False(t, dev.IsEnabled(gfx.Blend))
}

func TestRestoreEnable(t *testing.T) {
	dev := gltest.New()

	func() {
		defer gfx.RestoreEnable(dev, gfx.DepthTest)()
		assert.True(t, dev.IsEnabled(gfx.DepthTest))
	}()
	assert.False(t, dev.IsEnabled(gfx.DepthTest), "was disabled before")

	dev.Enable(gfx.DepthTest)
	func() {
		defer gfx.RestoreEnable(dev, gfx.DepthTest)()
	}()
	assert.True(t, dev.IsEnabled(gfx.DepthTest), "was enabled before")
}

func TestNestedRestoreEnableKeepsOuterScope(t *testing.T) {
	dev := gltest.New()
	func() {
		defer gfx.RestoreEnable(dev, gfx.CullFace)()
		func() {
			defer gfx.RestoreEnable(dev, gfx.CullFace)()
		}()
		assert.True(t, dev.IsEnabled(gfx.CullFace))
	}()
	assert.False(t, dev.IsEnabled(gfx.CullFace))
}

// Nesting unconditional guards for one capability disables it early.
// This is documented behaviour, so pin it down.
func TestNestedEnableDisablesEarly(t *testing.T) {
	dev := gltest.New()
	func() {
		defer gfx.Enable(dev, gfx.Blend)()
		func() {
			defer gfx.Enable(dev, gfx.Blend)()
		}()
		assert.False(t, dev.IsEnabled(gfx.Blend))
	}()
}
