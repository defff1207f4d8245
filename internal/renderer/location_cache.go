package renderer

import "VideoSurface/internal/gles"

// LocationCache caches uniform and attribute locations to avoid repeated
// GetUniformLocation / GetAttribLocation calls. Locations are only valid for
// the program they were resolved against.
type LocationCache struct {
	ctx      gles.Context
	program  gles.Program
	uniforms map[string]gles.Uniform
	attribs  map[string]gles.Attrib
}

// NewLocationCache creates an empty cache for a linked program.
func NewLocationCache(ctx gles.Context, program gles.Program) *LocationCache {
	return &LocationCache{
		ctx:      ctx,
		program:  program,
		uniforms: make(map[string]gles.Uniform),
		attribs:  make(map[string]gles.Attrib),
	}
}

// Uniform returns the cached uniform location or fetches and caches it.
// Misses (-1) are cached too.
func (lc *LocationCache) Uniform(name string) gles.Uniform {
	if loc, exists := lc.uniforms[name]; exists {
		return loc
	}
	loc := lc.ctx.GetUniformLocation(lc.program, name)
	lc.uniforms[name] = loc
	return loc
}

// Attrib returns the cached attribute location or fetches and caches it.
func (lc *LocationCache) Attrib(name string) gles.Attrib {
	if loc, exists := lc.attribs[name]; exists {
		return loc
	}
	loc := lc.ctx.GetAttribLocation(lc.program, name)
	lc.attribs[name] = loc
	return loc
}

// Len reports how many names are cached.
func (lc *LocationCache) Len() int {
	return len(lc.uniforms) + len(lc.attribs)
}

// Clear clears the cache (call when the program changes).
func (lc *LocationCache) Clear() {
	lc.uniforms = make(map[string]gles.Uniform)
	lc.attribs = make(map[string]gles.Attrib)
}
