package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// The transform functions work in place on a caller-owned column-major
// matrix and take degrees. RotateX, RotateY and Translate compose their
// transform so it is applied after everything already accumulated in m:
//
//	Identity(&m); RotateX(&m, a); RotateY(&m, a); Translate(&m, 0, 0, -5)
//
// spins an object about its own origin and then pushes it away from the
// camera (m = T * Ry * Rx).

// Identity sets m to the multiplicative identity.
func Identity(m *mgl32.Mat4) {
	*m = mgl32.Ident4()
}

// Perspective sets m to a symmetric OpenGL-style frustum projection. Invalid
// frusta are rejected with ErrInvalidFrustum and m is left untouched.
func Perspective(m *mgl32.Mat4, fovYDegrees, aspect, near, far float32) error {
	switch {
	case fovYDegrees <= 0 || fovYDegrees >= 180:
		return fmt.Errorf("%w: field of view %v", ErrInvalidFrustum, fovYDegrees)
	case aspect <= 0:
		return fmt.Errorf("%w: aspect ratio %v", ErrInvalidFrustum, aspect)
	case near <= 0 || near >= far:
		return fmt.Errorf("%w: near %v far %v", ErrInvalidFrustum, near, far)
	}
	*m = mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, near, far)
	return nil
}

// RotateX composes a rotation about the X axis.
func RotateX(m *mgl32.Mat4, degrees float32) {
	*m = mgl32.HomogRotate3DX(mgl32.DegToRad(degrees)).Mul4(*m)
}

// RotateY composes a rotation about the Y axis.
func RotateY(m *mgl32.Mat4, degrees float32) {
	*m = mgl32.HomogRotate3DY(mgl32.DegToRad(degrees)).Mul4(*m)
}

// Translate composes a translation.
func Translate(m *mgl32.Mat4, x, y, z float32) {
	*m = mgl32.Translate3D(x, y, z).Mul4(*m)
}

// ModelView builds the per-frame model-view matrix for an object spun by
// angleX and angleY degrees and pushed distance units down -Z.
func ModelView(m *mgl32.Mat4, angleX, angleY, distance float32) {
	Identity(m)
	RotateX(m, angleX)
	RotateY(m, angleY)
	Translate(m, 0, 0, -distance)
}
