package grass

// TransformData returns every instance transform as one flat
// column-major stream, 16 floats per instance in slot order. Hidden
// slots are included so the host can upload the whole buffer without
// repacking between regenerations.
func (e *Engine) TransformData() []float32 {
	out := make([]float32, 0, len(e.instances)*16)
	for i := range e.instances {
		out = append(out, e.instances[i].Transform[:]...)
	}
	return out
}

// ColorData returns every instance custom color as a flat RGBA stream,
// 4 floats per instance in slot order.
func (e *Engine) ColorData() []float32 {
	out := make([]float32, 0, len(e.instances)*4)
	for i := range e.instances {
		out = append(out, e.instances[i].Color[:]...)
	}
	return out
}
