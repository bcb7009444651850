package polysketch

// The With methods return a modified copy, so configs can be built inline:
//
//	cfg := polysketch.DefaultConfig().
//	    WithMarkerSize(0.02).
//	    WithColors("#ff0000", "#202020")

// WithMarkerSize sets the marker side length in NDC units.
func (c Config) WithMarkerSize(size float32) Config {
	c.MarkerSize = size
	return c
}

// WithColors sets the marker and edge colors as hex strings.
func (c Config) WithColors(marker, edge string) Config {
	c.MarkerColor = marker
	c.EdgeColor = edge
	return c
}

// WithTrackClearColor toggles the cursor-tinted background.
func (c Config) WithTrackClearColor(on bool) Config {
	c.TrackClearColor = on
	return c
}

// WithShaderSPIRV toggles WGSL to SPIR-V translation.
func (c Config) WithShaderSPIRV(on bool) Config {
	c.ShaderSPIRV = on
	return c
}

// WithMaxPoints caps the number of nodes.
func (c Config) WithMaxPoints(n int) Config {
	c.MaxPoints = n
	return c
}

// WithTitle sets the window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize sets the initial window size in pixels.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}
