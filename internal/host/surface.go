package host

import (
	"sync"

	"VideoSurface/internal/gles"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawer is the part of the renderer a Surface drives.
type Drawer interface {
	DrawFrame()
}

// Surface latches frames from a FrameListener producer into the pool's
// first texture on the render thread and serves as the renderer's Host.
//
// OnFrameAvailable may be called from any goroutine; everything else must
// run on the render thread.
type Surface struct {
	ctx       gles.Context
	pool      *TexturePool
	transform mgl32.Mat4

	mu      sync.Mutex
	pending *Frame
	latched uint64
	frames  uint64
}

// NewSurface serves textures from pool. The initial transform is identity.
func NewSurface(ctx gles.Context, pool *TexturePool) *Surface {
	return &Surface{
		ctx:       ctx,
		pool:      pool,
		transform: mgl32.Ident4(),
	}
}

// OnFrameAvailable records the newest frame; older unlatched frames are
// dropped.
func (s *Surface) OnFrameAvailable(frame Frame) {
	s.mu.Lock()
	s.pending = &frame
	s.mu.Unlock()
}

// Update uploads the pending frame, if any, and reports whether it did.
func (s *Surface) Update() bool {
	s.mu.Lock()
	frame := s.pending
	s.pending = nil
	s.mu.Unlock()

	if frame == nil {
		return false
	}
	handles := s.pool.Handles()
	if len(handles) == 0 {
		return false
	}
	s.ctx.BindTexture(s.pool.Target(), handles[0])
	s.ctx.TexImage2D(s.pool.Target(), 0, frame.Width, frame.Height, gles.RGBA, gles.UNSIGNED_BYTE, frame.Pix)
	s.ctx.BindTexture(s.pool.Target(), 0)
	s.latched = frame.Sequence
	s.frames++
	return true
}

// Draw renders only when a new frame was latched.
func (s *Surface) Draw(d Drawer) bool {
	if !s.Update() {
		return false
	}
	d.DrawFrame()
	return true
}

// SetTransform replaces the texture transform served to the renderer.
func (s *Surface) SetTransform(m mgl32.Mat4) {
	s.transform = m
}

// FlipVertical maps t to 1-t, for sources whose rows run bottom to top.
func FlipVertical() mgl32.Mat4 {
	return mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Scale3D(1, -1, 1))
}

// Latched returns the sequence number of the last uploaded frame and how
// many frames were uploaded.
func (s *Surface) Latched() (sequence, count uint64) {
	return s.latched, s.frames
}

// TextureHandles implements renderer.Host.
func (s *Surface) TextureHandles() []gles.Texture {
	return s.pool.Handles()
}

// TextureTransform implements renderer.Host.
func (s *Surface) TextureTransform() mgl32.Mat4 {
	return s.transform
}
