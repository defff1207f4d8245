package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation means the driver handed back a zero object name.
	ErrAllocation = errors.New("GPU object allocation failed")
	// ErrInvalidFrustum rejects projections with near <= 0, far <= near,
	// a non-positive aspect ratio or a field of view outside (0, 180).
	ErrInvalidFrustum  = errors.New("invalid perspective frustum")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrInvalidViewport = errors.New("invalid viewport size")
	// ErrNoTexture means the host's texture pool was empty.
	ErrNoTexture = errors.New("host supplied no texture name")
	// ErrNotReady is what DrawFrame would report outside the Ready state.
	// DrawFrame never returns it; it only shows up in debug logs.
	ErrNotReady = errors.New("renderer not ready")
)

// CompileError carries the driver's info log for a shader stage that failed
// to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("compile %s shader: no diagnostic", e.Stage)
	}
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	if e.Log == "" {
		return "link program: no diagnostic"
	}
	return "link program: " + e.Log
}
