package renderer

import (
	"fmt"
	"math"

	"VideoSurface/internal/config"
	"VideoSurface/internal/gles"
	"VideoSurface/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// State is the renderer lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
	// Drawing lasts for the duration of one DrawFrame call.
	Drawing
	// Failed is entered when initialization could not build its GPU
	// resources. DrawFrame is a no-op until the next Initialize.
	Failed
	Released
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Drawing:
		return "drawing"
	case Failed:
		return "failed"
	case Released:
		return "released"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Host supplies the video texture. Both methods are called on the render
// thread.
type Host interface {
	// TextureHandles is the host-owned pool of texture names the video is
	// decoded into. The renderer binds the first one.
	TextureHandles() []gles.Texture
	// TextureTransform is the current frame's texture-coordinate transform
	// (crop and orientation); it is uploaded verbatim.
	TextureTransform() mgl32.Mat4
}

// FrameState is the mutable per-surface state touched by DrawFrame.
type FrameState struct {
	Width, Height int
	// Angle is the shared rotation phase in degrees, kept in [0, 360).
	Angle float32
}

// Renderer draws the host's video texture onto one surface each frame.
//
// A Renderer is bound to the goroutine (and OS thread) owning its GL context.
// Calling any method from another goroutine, or from two at once, is
// undefined.
type Renderer struct {
	ctx  gles.Context
	host Host
	sink DiagnosticSink
	cfg  config.RenderConfig

	geometry Geometry
	binding  TextureBinding

	state       State
	program     *Program
	buffers     geometryBuffers
	textureName gles.Texture

	frame      FrameState
	projection mgl32.Mat4
	modelView  mgl32.Mat4
}

// New creates an uninitialized renderer. A nil sink logs diagnostics through
// the process logger.
func New(ctx gles.Context, host Host, sink DiagnosticSink, cfg config.RenderConfig) *Renderer {
	if sink == nil {
		sink = LogSink{}
	}
	return &Renderer{
		ctx:      ctx,
		host:     host,
		sink:     sink,
		cfg:      cfg,
		geometry: GeometryFor(cfg.Shape),
		binding: TextureBinding{
			Unit:   cfg.TextureUnit,
			Target: TextureTarget(cfg.Profile),
		},
		projection: mgl32.Ident4(),
		modelView:  mgl32.Ident4(),
	}
}

func (r *Renderer) State() State { return r.state }

func (r *Renderer) Frame() FrameState { return r.frame }

func (r *Renderer) Projection() mgl32.Mat4 { return r.projection }

func (r *Renderer) ModelView() mgl32.Mat4 { return r.modelView }

// Program returns the linked program, or nil outside Ready.
func (r *Renderer) Program() *Program { return r.program }

// Initialize records the viewport and builds the program, the geometry
// buffers and the texture binding. Calling it again releases what the
// previous call built first. On error the renderer is Failed and DrawFrame
// draws nothing.
func (r *Renderer) Initialize(width, height int) error {
	if r.state != Uninitialized {
		r.release()
	}
	r.frame = FrameState{Width: width, Height: height}

	if err := r.initialize(); err != nil {
		r.release()
		r.state = Failed
		logger.Log.Error("Render surface initialization failed",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Error(err))
		return err
	}
	r.state = Ready
	if r.cfg.Debug {
		gles.DrainErrors(r.ctx, "initialize")
	}
	logger.Log.Info("Render surface initialized",
		zap.String("shape", r.geometry.Name),
		zap.String("profile", string(r.cfg.Profile)),
		zap.Int("width", width),
		zap.Int("height", height))
	return nil
}

func (r *Renderer) initialize() error {
	if r.frame.Width <= 0 || r.frame.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, r.frame.Width, r.frame.Height)
	}
	if r.geometry.DepthTest {
		if err := r.updateProjection(); err != nil {
			return err
		}
	}
	if err := r.geometry.Validate(); err != nil {
		return err
	}

	handles := r.host.TextureHandles()
	if len(handles) == 0 || handles[0] == 0 {
		return ErrNoTexture
	}
	r.textureName = handles[0]
	// Bind once up front so the host's image source is attached to the unit
	// before the first frame arrives.
	r.binding.Bind(r.ctx, r.textureName)

	buffers, err := uploadGeometry(r.ctx, r.geometry)
	if err != nil {
		return err
	}
	r.buffers = buffers

	vertex, fragment := ShaderSources(r.cfg.Profile, r.cfg.Shape)
	program, err := LinkProgram(r.ctx, vertex, fragment, r.sink)
	if err != nil {
		return err
	}
	r.program = program
	return nil
}

// Resize changes the viewport without rebuilding GPU resources.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	r.frame.Width, r.frame.Height = width, height
	logger.Log.Debug("Render surface resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Release deletes the program and geometry buffers. The texture name stays
// with the host. The renderer can be initialized again afterwards.
func (r *Renderer) Release() {
	if r.state == Uninitialized || r.state == Released {
		return
	}
	r.release()
	r.state = Released
	logger.Log.Info("Render surface released")
}

func (r *Renderer) release() {
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	r.buffers.release(r.ctx)
	if r.textureName != 0 {
		r.binding.Unbind(r.ctx)
		r.textureName = 0
	}
}

func (r *Renderer) updateProjection() error {
	aspect := float32(r.frame.Width) / float32(r.frame.Height)
	return Perspective(&r.projection, r.cfg.FieldOfView, aspect, r.cfg.Near, r.cfg.Far)
}

// advanceAngle moves the shared rotation phase one step. It is called once
// per rotation axis, so both axes see different phases within a frame.
func (r *Renderer) advanceAngle() float32 {
	r.frame.Angle = float32(math.Mod(float64(r.frame.Angle+r.cfg.RotationStep), 360))
	if r.frame.Angle < 0 {
		r.frame.Angle += 360
	}
	return r.frame.Angle
}

// DrawFrame runs one draw cycle. Outside Ready it does nothing, so a host
// frame loop can keep calling it after a failed initialization.
func (r *Renderer) DrawFrame() {
	if r.state != Ready {
		logger.Log.Debug("Skipping frame", zap.Stringer("state", r.state), zap.Error(ErrNotReady))
		return
	}
	r.state = Drawing
	defer func() { r.state = Ready }()

	ctx := r.ctx
	g := r.geometry

	c := r.cfg.ClearColor
	ctx.ClearColor(c[0], c[1], c[2], c[3])
	if g.DepthTest {
		ctx.Enable(gles.DEPTH_TEST)
		ctx.Clear(gles.COLOR_BUFFER_BIT | gles.DEPTH_BUFFER_BIT)
	} else {
		ctx.Disable(gles.DEPTH_TEST)
		ctx.Clear(gles.COLOR_BUFFER_BIT)
	}
	ctx.Viewport(0, 0, r.frame.Width, r.frame.Height)

	r.program.Use()
	position := r.program.Attrib(attribPosition)
	texCoord := r.program.Attrib(attribTexCoord)

	if g.DepthTest {
		if err := r.updateProjection(); err != nil {
			logger.Log.Debug("Skipping frame", zap.Error(err))
			return
		}
		ModelView(&r.modelView, r.advanceAngle(), r.advanceAngle(), r.cfg.CameraDistance)

		r.program.SetMat4(uniformProj, r.projection)
		r.program.SetMat4(uniformModelView, r.modelView)
	}

	if position != gles.InvalidAttrib {
		ctx.BindBuffer(gles.ARRAY_BUFFER, r.buffers.position)
		ctx.EnableVertexAttribArray(position)
		ctx.VertexAttribPointer(position, positionSize, gles.FLOAT, false, 0, 0)
	}
	if texCoord != gles.InvalidAttrib {
		ctx.BindBuffer(gles.ARRAY_BUFFER, r.buffers.texCoord)
		ctx.EnableVertexAttribArray(texCoord)
		ctx.VertexAttribPointer(texCoord, texCoordSize, gles.FLOAT, false, 0, 0)
	}

	r.binding.Bind(ctx, r.textureName)
	r.program.SetInt(uniformSampler, r.binding.Unit)
	r.program.SetMat4(uniformTexMatrix, r.host.TextureTransform())

	if g.Indexed() {
		ctx.BindBuffer(gles.ELEMENT_ARRAY_BUFFER, r.buffers.index)
		ctx.DrawElements(g.Mode, len(g.Indices), gles.UNSIGNED_SHORT, 0)
		ctx.BindBuffer(gles.ELEMENT_ARRAY_BUFFER, 0)
	} else {
		ctx.DrawArrays(g.Mode, 0, g.VertexCount())
	}

	// Leaving the arrays enabled breaks later draws sharing this context.
	if position != gles.InvalidAttrib {
		ctx.DisableVertexAttribArray(position)
	}
	if texCoord != gles.InvalidAttrib {
		ctx.DisableVertexAttribArray(texCoord)
	}
	ctx.BindBuffer(gles.ARRAY_BUFFER, 0)

	if r.cfg.Debug {
		gles.DrainErrors(ctx, "drawFrame")
	}
}
