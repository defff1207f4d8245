package renderer

import (
	"fmt"

	"VideoSurface/internal/gles"
	"VideoSurface/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// CompileShader compiles one stage. On failure the info log goes to sink,
// the shader object is deleted and a *CompileError is returned; the zero
// handle is never returned alongside a nil error.
func CompileShader(ctx gles.Context, src ShaderSource, sink DiagnosticSink) (gles.Shader, error) {
	shader := ctx.CreateShader(src.Stage.shaderType())
	if shader == 0 {
		return 0, fmt.Errorf("create %s shader: %w", src.Stage, ErrAllocation)
	}
	ctx.ShaderSource(shader, src.Text)
	ctx.CompileShader(shader)

	if gles.Enum(ctx.GetShaderi(shader, gles.COMPILE_STATUS)) == gles.FALSE {
		log := ctx.GetShaderInfoLog(shader)
		if sink != nil {
			sink.ShaderDiagnostic(src.Stage, log)
		}
		ctx.DeleteShader(shader)
		return 0, &CompileError{Stage: src.Stage, Log: log}
	}

	logger.Log.Debug("Shader compiled",
		zap.Stringer("stage", src.Stage),
		zap.Uint32("shader", uint32(shader)))
	return shader, nil
}

// LinkProgram compiles both stages and links them. Intermediate shader
// objects are released on every path; a program that fails to link is
// deleted before the *LinkError is returned.
func LinkProgram(ctx gles.Context, vertex, fragment ShaderSource, sink DiagnosticSink) (*Program, error) {
	var shaders Unwind
	defer shaders.Unwind()

	vs, err := CompileShader(ctx, vertex, sink)
	if err != nil {
		return nil, err
	}
	shaders.Add(func() { ctx.DeleteShader(vs) })

	fs, err := CompileShader(ctx, fragment, sink)
	if err != nil {
		return nil, err
	}
	shaders.Add(func() { ctx.DeleteShader(fs) })

	program := ctx.CreateProgram()
	if program == 0 {
		return nil, fmt.Errorf("create program: %w", ErrAllocation)
	}
	ctx.AttachShader(program, vs)
	ctx.AttachShader(program, fs)
	ctx.LinkProgram(program)
	ctx.DetachShader(program, vs)
	ctx.DetachShader(program, fs)

	if gles.Enum(ctx.GetProgrami(program, gles.LINK_STATUS)) == gles.FALSE {
		log := ctx.GetProgramInfoLog(program)
		if sink != nil {
			sink.ShaderDiagnostic(StageProgram, log)
		}
		ctx.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}

	logger.Log.Debug("Shader program linked", zap.Uint32("program", uint32(program)))
	return &Program{
		ctx:       ctx,
		handle:    program,
		locations: NewLocationCache(ctx, program),
	}, nil
}

// =============================================================
//
//	Program
//
// =============================================================

// Program is a linked shader program. A *Program always holds a usable
// handle until Release.
type Program struct {
	ctx       gles.Context
	handle    gles.Program
	locations *LocationCache
}

func (p *Program) Handle() gles.Program { return p.handle }

func (p *Program) Use() {
	p.ctx.UseProgram(p.handle)
}

func (p *Program) Uniform(name string) gles.Uniform { return p.locations.Uniform(name) }

func (p *Program) Attrib(name string) gles.Attrib { return p.locations.Attrib(name) }

// SetInt sets an int uniform, skipping names the program does not use.
func (p *Program) SetInt(name string, value int) {
	loc := p.Uniform(name)
	if loc != gles.InvalidUniform {
		p.ctx.Uniform1i(loc, value)
	}
}

// SetMat4 uploads a column-major matrix, skipping unused names.
func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	loc := p.Uniform(name)
	if loc != gles.InvalidUniform {
		p.ctx.UniformMatrix4fv(loc, value[:])
	}
}

// Release deletes the program. It is safe to call more than once.
func (p *Program) Release() {
	if p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
	p.locations.Clear()
}
