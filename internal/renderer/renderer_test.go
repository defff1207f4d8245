package renderer

import (
	"errors"
	"testing"

	"VideoSurface/internal/config"
	"VideoSurface/internal/gles"
	"VideoSurface/internal/gles/glestest"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeHost struct {
	handles   []gles.Texture
	transform mgl32.Mat4
	calls     int
}

func (h *fakeHost) TextureHandles() []gles.Texture { return h.handles }

func (h *fakeHost) TextureTransform() mgl32.Mat4 {
	h.calls++
	return h.transform
}

func matrixEqual(got []float32, want mgl32.Mat4) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func newTestRenderer(t *testing.T, cfg config.RenderConfig) (*Renderer, *glestest.Recorder, *fakeHost) {
	t.Helper()
	rec := glestest.New()
	host := &fakeHost{
		handles:   []gles.Texture{rec.CreateTexture()},
		transform: mgl32.Ident4(),
	}
	return New(rec, host, nil, cfg), rec, host
}

func TestInitializeThenDrawFrame(t *testing.T) {
	r, rec, host := newTestRenderer(t, config.DefaultRenderConfig())

	if err := r.Initialize(1280, 720); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if r.State() != Ready {
		t.Fatalf("Expected Ready, got %v", r.State())
	}

	rec.Reset()
	r.DrawFrame()

	if vp := rec.ViewportRect(); vp != [4]int{0, 0, 1280, 720} {
		t.Errorf("Expected viewport (0,0,1280,720), got %v", vp)
	}

	program := r.Program().Handle()
	if rec.CurrentProgram() != program {
		t.Error("Program should be active")
	}

	texLoc := rec.UniformLocation(program, uniformTexMatrix)
	if got := rec.UniformValues[texLoc]; !matrixEqual(got, mgl32.Ident4()) {
		t.Errorf("Expected identity texture transform, got %v", got)
	}
	if host.calls != 1 {
		t.Errorf("Texture transform should be fetched once per frame, got %d", host.calls)
	}

	draw, ok := rec.Last("DrawElements")
	if !ok {
		t.Fatal("Expected an indexed draw")
	}
	if draw.Args[0] != gles.TRIANGLES || draw.Args[1] != 36 || draw.Args[2] != gles.UNSIGNED_SHORT {
		t.Errorf("Unexpected draw call %v", draw)
	}
	if !rec.IsEnabled(gles.DEPTH_TEST) {
		t.Error("Cube should draw with depth testing")
	}
	if clear, _ := rec.Last("Clear"); clear.Args[0] != gles.COLOR_BUFFER_BIT|gles.DEPTH_BUFFER_BIT {
		t.Errorf("Expected color and depth clear, got %v", clear)
	}
}

func TestDrawFrameUploadsMatrices(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	r, rec, _ := newTestRenderer(t, cfg)
	if err := r.Initialize(1280, 720); err != nil {
		t.Fatal(err)
	}

	r.DrawFrame()

	program := r.Program().Handle()
	want := mgl32.Perspective(mgl32.DegToRad(45), 1280.0/720.0, 0.1, 100)
	got := rec.UniformValues[rec.UniformLocation(program, uniformProj)]
	if len(got) != 16 {
		t.Fatalf("Projection not uploaded: %v", got)
	}
	for i := range want {
		if !approxEqual(got[i], want[i]) {
			t.Fatalf("Projection mismatch at %d: got %v want %v", i, got[i], want[i])
		}
	}

	var mv mgl32.Mat4
	ModelView(&mv, 1, 2, 5)
	got = rec.UniformValues[rec.UniformLocation(program, uniformModelView)]
	if len(got) != 16 {
		t.Fatalf("Model-view not uploaded: %v", got)
	}
	for i := range mv {
		if !approxEqual(got[i], mv[i]) {
			t.Fatalf("Model-view mismatch at %d: got %v want %v", i, got[i], mv[i])
		}
	}
}

func TestAngleAdvancesTwicePerFrame(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.RotationStep = 1.5
	r, _, _ := newTestRenderer(t, cfg)
	if err := r.Initialize(640, 480); err != nil {
		t.Fatal(err)
	}

	r.DrawFrame()
	if got := r.Frame().Angle; !approxEqual(got, 3) {
		t.Errorf("Expected angle 3 after one frame, got %v", got)
	}

	r.DrawFrame()
	if got := r.Frame().Angle; !approxEqual(got, 6) {
		t.Errorf("Expected angle 6 after two frames, got %v", got)
	}

	var want mgl32.Mat4
	ModelView(&want, 4.5, 6, cfg.CameraDistance)
	if !r.ModelView().ApproxEqualThreshold(want, epsilon) {
		t.Errorf("Model-view should use the phase of each axis, got %v", r.ModelView())
	}
}

func TestAngleWraps(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.RotationStep = 100
	r, _, _ := newTestRenderer(t, cfg)
	if err := r.Initialize(640, 480); err != nil {
		t.Fatal(err)
	}

	r.DrawFrame()
	r.DrawFrame()

	if got := r.Frame().Angle; !approxEqual(got, 40) {
		t.Errorf("Expected 400 to wrap to 40, got %v", got)
	}
}

func TestDrawFrameOrderAndCleanup(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	if err := r.Initialize(800, 600); err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	r.DrawFrame()

	order := []string{"Clear", "Viewport", "UseProgram", "EnableVertexAttribArray", "BindTexture", "DrawElements", "DisableVertexAttribArray"}
	pos := 0
	for _, name := range order {
		i := rec.Index(name, pos)
		if i < 0 {
			t.Fatalf("%s missing or out of order in %v", name, rec.Calls)
		}
		pos = i
	}

	if attribs := rec.EnabledAttribs(); len(attribs) != 0 {
		t.Errorf("Vertex attributes left enabled: %v", attribs)
	}
	if rec.Count("DisableVertexAttribArray") != 2 {
		t.Errorf("Expected both attributes disabled, got %d", rec.Count("DisableVertexAttribArray"))
	}
	if r.State() != Ready {
		t.Errorf("Expected Ready after drawing, got %v", r.State())
	}
}

func TestLocationsResolvedOnce(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	if err := r.Initialize(800, 600); err != nil {
		t.Fatal(err)
	}

	r.DrawFrame()
	first := rec.Count("GetUniformLocation") + rec.Count("GetAttribLocation")
	r.DrawFrame()
	r.DrawFrame()
	total := rec.Count("GetUniformLocation") + rec.Count("GetAttribLocation")

	if first == 0 || total != first {
		t.Errorf("Locations should be cached after the first frame: %d then %d", first, total)
	}
}

func TestQuadVariant(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.Shape = config.ShapeQuad
	r, rec, _ := newTestRenderer(t, cfg)
	if err := r.Initialize(1280, 720); err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	r.DrawFrame()

	draw, ok := rec.Last("DrawArrays")
	if !ok {
		t.Fatal("Expected DrawArrays")
	}
	if draw.Args[0] != gles.TRIANGLE_FAN || draw.Args[1] != 0 || draw.Args[2] != 4 {
		t.Errorf("Unexpected draw call %v", draw)
	}
	if rec.IsEnabled(gles.DEPTH_TEST) {
		t.Error("Quad should draw without depth testing")
	}
	if rec.Count("UniformMatrix4fv") != 1 {
		t.Errorf("Quad only uploads the texture transform, got %d matrices", rec.Count("UniformMatrix4fv"))
	}
	if r.Frame().Angle != 0 {
		t.Error("Quad does not animate")
	}
}

func TestTextureTransformUploadedVerbatim(t *testing.T) {
	r, rec, host := newTestRenderer(t, config.DefaultRenderConfig())
	host.transform = mgl32.Mat4{
		1, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 1,
	}
	if err := r.Initialize(320, 240); err != nil {
		t.Fatal(err)
	}

	r.DrawFrame()

	got := rec.UniformValues[rec.UniformLocation(r.Program().Handle(), uniformTexMatrix)]
	if !matrixEqual(got, host.transform) {
		t.Errorf("Texture transform should be uploaded unchanged, got %v", got)
	}
}

func TestExternalTextureBinding(t *testing.T) {
	r, rec, host := newTestRenderer(t, config.DefaultRenderConfig())
	if err := r.Initialize(320, 240); err != nil {
		t.Fatal(err)
	}
	rec.Reset()

	r.DrawFrame()

	bind, _ := rec.Last("BindTexture")
	if bind.Args[0] != gles.TEXTURE_EXTERNAL_OES || bind.Args[1] != host.handles[0] {
		t.Errorf("Expected host texture on the OES target, got %v", bind)
	}
	sampler := rec.UniformLocation(r.Program().Handle(), uniformSampler)
	if v, ok := rec.UniformInts[sampler]; !ok || v != 0 {
		t.Errorf("Sampler should read unit 0, got %v", v)
	}
	if rec.Count("CreateTexture") != 0 {
		t.Error("Drawing must not allocate textures")
	}
}

func TestDesktopProfileSamples2D(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.Profile = config.ProfileDesktop
	r, rec, _ := newTestRenderer(t, cfg)
	if err := r.Initialize(320, 240); err != nil {
		t.Fatal(err)
	}

	r.DrawFrame()

	bind, _ := rec.Last("BindTexture")
	if bind.Args[0] != gles.TEXTURE_2D {
		t.Errorf("Expected TEXTURE_2D, got %v", bind.Args[0])
	}
}

func TestDrawFrameBeforeInitializeIsNoop(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	rec.Reset()

	r.DrawFrame()

	if len(rec.Calls) != 0 {
		t.Errorf("Expected no GL calls, got %v", rec.Calls)
	}
	if r.State() != Uninitialized {
		t.Errorf("Expected Uninitialized, got %v", r.State())
	}
}

func TestFailedInitializationSkipsDraw(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	rec.FailCreateProgram = true

	err := r.Initialize(1280, 720)

	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("Expected ErrAllocation, got %v", err)
	}
	if r.State() != Failed {
		t.Fatalf("Expected Failed, got %v", r.State())
	}
	if rec.LiveShaders() != 0 || rec.LiveBuffers() != 0 || rec.LivePrograms() != 0 {
		t.Errorf("Failed init leaked objects: %d shaders, %d buffers, %d programs",
			rec.LiveShaders(), rec.LiveBuffers(), rec.LivePrograms())
	}

	rec.Reset()
	r.DrawFrame()
	if len(rec.Calls) != 0 {
		t.Errorf("Failed renderer should not touch GL, got %v", rec.Calls)
	}

	// A later initialize can recover.
	rec.FailCreateProgram = false
	if err := r.Initialize(1280, 720); err != nil {
		t.Fatalf("Re-initialize failed: %v", err)
	}
	if r.State() != Ready {
		t.Errorf("Expected Ready, got %v", r.State())
	}
}

func TestInitializeWithoutTexture(t *testing.T) {
	r, _, host := newTestRenderer(t, config.DefaultRenderConfig())
	host.handles = nil

	if err := r.Initialize(640, 480); !errors.Is(err, ErrNoTexture) {
		t.Errorf("Expected ErrNoTexture, got %v", err)
	}
	if r.State() != Failed {
		t.Errorf("Expected Failed, got %v", r.State())
	}
}

func TestInitializeInvalidViewport(t *testing.T) {
	r, _, _ := newTestRenderer(t, config.DefaultRenderConfig())

	if err := r.Initialize(0, 720); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Expected ErrInvalidViewport, got %v", err)
	}
}

func TestInitializeInvalidFrustum(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.Near = 0
	r, _, _ := newTestRenderer(t, cfg)

	if err := r.Initialize(640, 480); !errors.Is(err, ErrInvalidFrustum) {
		t.Errorf("Expected ErrInvalidFrustum, got %v", err)
	}
}

func TestReinitializeReleasesPrevious(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	if err := r.Initialize(640, 480); err != nil {
		t.Fatal(err)
	}
	first := r.Program().Handle()
	r.DrawFrame()

	if err := r.Initialize(1024, 768); err != nil {
		t.Fatal(err)
	}

	if rec.LivePrograms() != 1 {
		t.Errorf("Expected exactly 1 live program, got %d", rec.LivePrograms())
	}
	if rec.LiveBuffers() != 3 {
		t.Errorf("Expected exactly 3 live buffers, got %d", rec.LiveBuffers())
	}
	if r.Program().Handle() == first {
		t.Error("Expected a freshly linked program")
	}
	if r.Frame().Angle != 0 {
		t.Error("Re-initialization should reset the rotation phase")
	}
	if r.Frame().Width != 1024 || r.Frame().Height != 768 {
		t.Errorf("Unexpected viewport %+v", r.Frame())
	}
}

func TestRelease(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	if err := r.Initialize(640, 480); err != nil {
		t.Fatal(err)
	}

	r.Release()
	r.Release()

	if r.State() != Released {
		t.Errorf("Expected Released, got %v", r.State())
	}
	if rec.LivePrograms() != 0 || rec.LiveBuffers() != 0 {
		t.Errorf("Release leaked %d programs and %d buffers", rec.LivePrograms(), rec.LiveBuffers())
	}
	if rec.LiveTextures() != 1 {
		t.Error("The host's texture must survive Release")
	}
	if rec.Count("DeleteProgram") != 1 {
		t.Errorf("Expected one DeleteProgram, got %d", rec.Count("DeleteProgram"))
	}
	bind, ok := rec.Last("BindTexture")
	if !ok || bind.Args[0] != gles.TEXTURE_EXTERNAL_OES || bind.Args[1] != gles.Texture(0) {
		t.Errorf("Expected the texture unit detached on release, got %v", bind)
	}
	if rec.Count("DeleteTexture") != 0 {
		t.Error("Release must not delete the host's texture")
	}

	rec.Reset()
	r.DrawFrame()
	if len(rec.Calls) != 0 {
		t.Error("Released renderer should not draw")
	}
}

func TestResize(t *testing.T) {
	r, rec, _ := newTestRenderer(t, config.DefaultRenderConfig())
	if err := r.Initialize(640, 480); err != nil {
		t.Fatal(err)
	}
	program := r.Program().Handle()

	if err := r.Resize(1920, 1080); err != nil {
		t.Fatal(err)
	}
	r.DrawFrame()

	if vp := rec.ViewportRect(); vp != [4]int{0, 0, 1920, 1080} {
		t.Errorf("Expected resized viewport, got %v", vp)
	}
	if r.Program().Handle() != program {
		t.Error("Resize should not relink")
	}
	if err := r.Resize(0, 10); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("Expected ErrInvalidViewport, got %v", err)
	}
}

func TestDebugDrainsErrors(t *testing.T) {
	cfg := config.DefaultRenderConfig()
	cfg.Debug = true
	r, rec, _ := newTestRenderer(t, cfg)
	if err := r.Initialize(640, 480); err != nil {
		t.Fatal(err)
	}
	rec.PendingErrors = []gles.Enum{gles.INVALID_OPERATION, gles.INVALID_VALUE}

	r.DrawFrame()

	if len(rec.PendingErrors) != 0 {
		t.Errorf("Expected errors drained, %v remain", rec.PendingErrors)
	}
}

func TestStateString(t *testing.T) {
	names := map[State]string{
		Uninitialized: "uninitialized",
		Ready:         "ready",
		Drawing:       "drawing",
		Failed:        "failed",
		Released:      "released",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("Expected %q, got %q", want, s.String())
		}
	}
}
