package gfx

// Enable turns c on and returns the function that turns it off.
//
//	defer gfx.Enable(dev, gfx.Blend)()
//
// Guards for the same capability must not be nested: the inner release
// disables c while the outer scope still expects it on. Use
// RestoreEnable for scopes that may run with c already enabled.
func Enable(dev Device, c Capability) func() {
	dev.Enable(c)
	return func() { dev.Disable(c) }
}

// RestoreEnable turns c on and returns the function that restores the
// state c had before the call: it disables c only if it was disabled.
func RestoreEnable(dev Device, c Capability) func() {
	before := dev.IsEnabled(c)
	dev.Enable(c)
	return func() {
		if !before {
			dev.Disable(c)
		}
	}
}
