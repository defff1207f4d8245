package host

import (
	"sync"
	"testing"

	"VideoSurface/internal/gles"
	"VideoSurface/internal/gles/glestest"

	"github.com/go-gl/mathgl/mgl32"
)

type countingDrawer struct{ draws int }

func (d *countingDrawer) DrawFrame() { d.draws++ }

func newTestSurface(t *testing.T) (*glestest.Recorder, *Surface) {
	t.Helper()
	rec := glestest.New()
	pool, err := NewTexturePool(rec, gles.TEXTURE_2D, 1)
	if err != nil {
		t.Fatalf("NewTexturePool failed: %v", err)
	}
	rec.Reset()
	return rec, NewSurface(rec, pool)
}

func TestSurfaceDrawsOnlyNewFrames(t *testing.T) {
	rec, s := newTestSurface(t)
	d := &countingDrawer{}

	if s.Draw(d) {
		t.Error("Expected no draw without a frame")
	}
	if d.draws != 0 || rec.Count("TexImage2D") != 0 {
		t.Errorf("Expected nothing uploaded or drawn, got %d draws", d.draws)
	}

	s.OnFrameAvailable(Frame{Width: 2, Height: 2, Pix: make([]byte, 16), Sequence: 7})
	if !s.Draw(d) {
		t.Error("Expected draw after a frame arrived")
	}
	if s.Draw(d) {
		t.Error("Expected the frame to be consumed")
	}
	if d.draws != 1 {
		t.Errorf("Expected 1 draw, got %d", d.draws)
	}

	c, ok := rec.Last("TexImage2D")
	if !ok {
		t.Fatal("Expected TexImage2D")
	}
	if c.Args[0] != gles.TEXTURE_2D || c.Args[2] != 2 || c.Args[3] != 2 || c.Args[6] != 16 {
		t.Errorf("Unexpected upload %v", c.Args)
	}
	bind := rec.Find("BindTexture")[0]
	if bind.Args[1] != s.TextureHandles()[0] {
		t.Errorf("Expected upload into %v, got %v", s.TextureHandles()[0], bind.Args[1])
	}
	if seq, n := s.Latched(); seq != 7 || n != 1 {
		t.Errorf("Expected latched 7/1, got %d/%d", seq, n)
	}
}

func TestSurfaceKeepsNewestFrame(t *testing.T) {
	_, s := newTestSurface(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			s.OnFrameAvailable(Frame{Width: 1, Height: 1, Pix: make([]byte, 4), Sequence: seq})
		}(uint64(i))
	}
	wg.Wait()
	s.OnFrameAvailable(Frame{Width: 1, Height: 1, Pix: make([]byte, 4), Sequence: 99})

	if !s.Update() {
		t.Fatal("Expected an update")
	}
	if s.Update() {
		t.Error("Expected a single coalesced update")
	}
	if seq, n := s.Latched(); seq != 99 || n != 1 {
		t.Errorf("Expected latched 99/1, got %d/%d", seq, n)
	}
}

func TestSurfaceTransform(t *testing.T) {
	_, s := newTestSurface(t)
	if s.TextureTransform() != mgl32.Ident4() {
		t.Error("Expected identity transform by default")
	}

	s.SetTransform(FlipVertical())
	m := s.TextureTransform()
	top := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	bottom := m.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if top.Y() != 1 || bottom.Y() != 0 {
		t.Errorf("Expected t flipped, got %v and %v", top, bottom)
	}
}
