package tui

// RenderSettled mounts v, waits for the fetch to settle and returns the plain
// rendering. It runs without a terminal.
func RenderSettled(v *DataView) string {
	fetch := v.mount()
	v.Update(fetch())
	return v.PlainView()
}
