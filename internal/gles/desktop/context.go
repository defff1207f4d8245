// Package desktop implements gles.Context on top of a desktop OpenGL 4.1 core
// profile through go-gl. It is used by the preview binary; the GLES-only
// external image target is not available here, so the preview samples a
// regular 2D texture instead.
package desktop

import (
	"fmt"
	"strings"
	"unsafe"

	"VideoSurface/internal/gles"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Context forwards to the go-gl function table. Core profile refuses vertex
// attribute calls without a bound vertex array object, so one is created and
// kept bound for the life of the context.
type Context struct {
	vao uint32
}

// NewContext loads the GL function pointers for the current thread's context.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	c := &Context{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

// Version reports the driver's GL version string.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Release deletes the vertex array object owned by the context.
func (c *Context) Release() {
	if c.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) ActiveTexture(texture gles.Enum) { gl.ActiveTexture(uint32(texture)) }

func (c *Context) AttachShader(p gles.Program, s gles.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *Context) BindBuffer(target gles.Enum, b gles.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (c *Context) BindTexture(target gles.Enum, t gles.Texture) {
	gl.BindTexture(uint32(target), uint32(t))
}

func (c *Context) BufferData(target gles.Enum, src []byte, usage gles.Enum) {
	if len(src) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(src), gl.Ptr(src), uint32(usage))
}

func (c *Context) Clear(mask gles.Enum) { gl.Clear(uint32(mask)) }

func (c *Context) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (c *Context) CompileShader(s gles.Shader) { gl.CompileShader(uint32(s)) }

func (c *Context) CreateBuffer() gles.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gles.Buffer(b)
}

func (c *Context) CreateProgram() gles.Program { return gles.Program(gl.CreateProgram()) }

func (c *Context) CreateShader(ty gles.Enum) gles.Shader {
	return gles.Shader(gl.CreateShader(uint32(ty)))
}

func (c *Context) CreateTexture() gles.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return gles.Texture(t)
}

func (c *Context) DeleteBuffer(b gles.Buffer) {
	v := uint32(b)
	gl.DeleteBuffers(1, &v)
}

func (c *Context) DeleteProgram(p gles.Program) { gl.DeleteProgram(uint32(p)) }

func (c *Context) DeleteShader(s gles.Shader) { gl.DeleteShader(uint32(s)) }

func (c *Context) DeleteTexture(t gles.Texture) {
	v := uint32(t)
	gl.DeleteTextures(1, &v)
}

func (c *Context) DetachShader(p gles.Program, s gles.Shader) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (c *Context) Disable(capability gles.Enum) { gl.Disable(uint32(capability)) }

func (c *Context) DisableVertexAttribArray(a gles.Attrib) {
	gl.DisableVertexAttribArray(uint32(a))
}

func (c *Context) DrawArrays(mode gles.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (c *Context) DrawElements(mode gles.Enum, count int, ty gles.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}

func (c *Context) Enable(capability gles.Enum) { gl.Enable(uint32(capability)) }

func (c *Context) EnableVertexAttribArray(a gles.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (c *Context) GetAttribLocation(p gles.Program, name string) gles.Attrib {
	return gles.Attrib(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) GetError() gles.Enum { return gles.Enum(gl.GetError()) }

func (c *Context) GetProgrami(p gles.Program, pname gles.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

// GetProgramInfoLog queries the log length, then fetches the log.
func (c *Context) GetProgramInfoLog(p gles.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) GetShaderi(s gles.Shader, pname gles.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

// GetShaderInfoLog queries the log length, then fetches the log.
func (c *Context) GetShaderInfoLog(s gles.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) GetUniformLocation(p gles.Program, name string) gles.Uniform {
	return gles.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) LinkProgram(p gles.Program) { gl.LinkProgram(uint32(p)) }

func (c *Context) ShaderSource(s gles.Shader, src string) {
	cSources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, cSources, nil)
	free()
}

func (c *Context) TexImage2D(target gles.Enum, level int, width, height int, format gles.Enum, ty gles.Enum, data []byte) {
	var pixels unsafe.Pointer
	if len(data) > 0 {
		pixels = gl.Ptr(data)
	}
	gl.TexImage2D(uint32(target), int32(level), int32(format), int32(width), int32(height), 0, uint32(format), uint32(ty), pixels)
}

func (c *Context) TexParameteri(target, pname gles.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (c *Context) Uniform1i(dst gles.Uniform, v int) { gl.Uniform1i(int32(dst), int32(v)) }

func (c *Context) UniformMatrix4fv(dst gles.Uniform, src []float32) {
	if len(src) < 16 {
		return
	}
	gl.UniformMatrix4fv(int32(dst), int32(len(src)/16), false, &src[0])
}

func (c *Context) UseProgram(p gles.Program) { gl.UseProgram(uint32(p)) }

func (c *Context) VertexAttribPointer(dst gles.Attrib, size int, ty gles.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

var _ gles.Context = (*Context)(nil)
