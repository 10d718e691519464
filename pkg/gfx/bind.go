package gfx

// BindBuffer binds id to target and returns the function that binds
// zero back. Use as defer BindBuffer(dev, target, id)().
func BindBuffer(dev Device, target Target, id uint32) func() {
	dev.BindBuffer(target, id)
	return func() { dev.BindBuffer(target, 0) }
}

// BindVertexArray binds id and returns the function that binds zero back.
func BindVertexArray(dev Device, id uint32) func() {
	dev.BindVertexArray(id)
	return func() { dev.BindVertexArray(0) }
}
