// Package mobile adapts golang.org/x/mobile/gl, the GLES2 binding used by
// gomobile apps, to gles.Context.
package mobile

import (
	"VideoSurface/internal/gles"

	"golang.org/x/mobile/gl"
)

// Context wraps the gl.Context handed out by a lifecycle event.
type Context struct {
	gl gl.Context
}

// NewContext wraps glctx. The wrapper must be used on the app's GL thread.
func NewContext(glctx gl.Context) *Context {
	return &Context{gl: glctx}
}

func program(p gles.Program) gl.Program {
	return gl.Program{Init: p != 0, Value: uint32(p)}
}

func shader(s gles.Shader) gl.Shader    { return gl.Shader{Value: uint32(s)} }
func buffer(b gles.Buffer) gl.Buffer    { return gl.Buffer{Value: uint32(b)} }
func texture(t gles.Texture) gl.Texture { return gl.Texture{Value: uint32(t)} }
func uniform(u gles.Uniform) gl.Uniform { return gl.Uniform{Value: int32(u)} }

// Attrib locations are unsigned in x/mobile; -1 survives the round trip
// through int32 truncation.
func attrib(a gles.Attrib) gl.Attrib { return gl.Attrib{Value: uint(uint32(a))} }

func (c *Context) ActiveTexture(texture gles.Enum) { c.gl.ActiveTexture(gl.Enum(texture)) }

func (c *Context) AttachShader(p gles.Program, s gles.Shader) {
	c.gl.AttachShader(program(p), shader(s))
}

func (c *Context) BindBuffer(target gles.Enum, b gles.Buffer) {
	c.gl.BindBuffer(gl.Enum(target), buffer(b))
}

func (c *Context) BindTexture(target gles.Enum, t gles.Texture) {
	c.gl.BindTexture(gl.Enum(target), texture(t))
}

func (c *Context) BufferData(target gles.Enum, src []byte, usage gles.Enum) {
	c.gl.BufferData(gl.Enum(target), src, gl.Enum(usage))
}

func (c *Context) Clear(mask gles.Enum) { c.gl.Clear(gl.Enum(mask)) }

func (c *Context) ClearColor(red, green, blue, alpha float32) {
	c.gl.ClearColor(red, green, blue, alpha)
}

func (c *Context) CompileShader(s gles.Shader) { c.gl.CompileShader(shader(s)) }

func (c *Context) CreateBuffer() gles.Buffer { return gles.Buffer(c.gl.CreateBuffer().Value) }

func (c *Context) CreateProgram() gles.Program {
	return gles.Program(c.gl.CreateProgram().Value)
}

func (c *Context) CreateShader(ty gles.Enum) gles.Shader {
	return gles.Shader(c.gl.CreateShader(gl.Enum(ty)).Value)
}

func (c *Context) CreateTexture() gles.Texture { return gles.Texture(c.gl.CreateTexture().Value) }

func (c *Context) DeleteBuffer(b gles.Buffer) { c.gl.DeleteBuffer(buffer(b)) }

func (c *Context) DeleteProgram(p gles.Program) { c.gl.DeleteProgram(program(p)) }

func (c *Context) DeleteShader(s gles.Shader) { c.gl.DeleteShader(shader(s)) }

func (c *Context) DeleteTexture(t gles.Texture) { c.gl.DeleteTexture(texture(t)) }

func (c *Context) DetachShader(p gles.Program, s gles.Shader) {
	c.gl.DetachShader(program(p), shader(s))
}

func (c *Context) Disable(capability gles.Enum) { c.gl.Disable(gl.Enum(capability)) }

func (c *Context) DisableVertexAttribArray(a gles.Attrib) {
	c.gl.DisableVertexAttribArray(attrib(a))
}

func (c *Context) DrawArrays(mode gles.Enum, first, count int) {
	c.gl.DrawArrays(gl.Enum(mode), first, count)
}

func (c *Context) DrawElements(mode gles.Enum, count int, ty gles.Enum, offset int) {
	c.gl.DrawElements(gl.Enum(mode), count, gl.Enum(ty), offset)
}

func (c *Context) Enable(capability gles.Enum) { c.gl.Enable(gl.Enum(capability)) }

func (c *Context) EnableVertexAttribArray(a gles.Attrib) {
	c.gl.EnableVertexAttribArray(attrib(a))
}

func (c *Context) GetAttribLocation(p gles.Program, name string) gles.Attrib {
	return gles.Attrib(int32(c.gl.GetAttribLocation(program(p), name).Value))
}

func (c *Context) GetError() gles.Enum { return gles.Enum(c.gl.GetError()) }

func (c *Context) GetProgrami(p gles.Program, pname gles.Enum) int {
	return c.gl.GetProgrami(program(p), gl.Enum(pname))
}

func (c *Context) GetProgramInfoLog(p gles.Program) string {
	return c.gl.GetProgramInfoLog(program(p))
}

func (c *Context) GetShaderi(s gles.Shader, pname gles.Enum) int {
	return c.gl.GetShaderi(shader(s), gl.Enum(pname))
}

func (c *Context) GetShaderInfoLog(s gles.Shader) string {
	return c.gl.GetShaderInfoLog(shader(s))
}

func (c *Context) GetUniformLocation(p gles.Program, name string) gles.Uniform {
	return gles.Uniform(c.gl.GetUniformLocation(program(p), name).Value)
}

func (c *Context) LinkProgram(p gles.Program) { c.gl.LinkProgram(program(p)) }

func (c *Context) ShaderSource(s gles.Shader, src string) { c.gl.ShaderSource(shader(s), src) }

func (c *Context) TexImage2D(target gles.Enum, level int, width, height int, format gles.Enum, ty gles.Enum, data []byte) {
	c.gl.TexImage2D(gl.Enum(target), level, int(format), width, height, gl.Enum(format), gl.Enum(ty), data)
}

func (c *Context) TexParameteri(target, pname gles.Enum, param int) {
	c.gl.TexParameteri(gl.Enum(target), gl.Enum(pname), param)
}

func (c *Context) Uniform1i(dst gles.Uniform, v int) { c.gl.Uniform1i(uniform(dst), v) }

func (c *Context) UniformMatrix4fv(dst gles.Uniform, src []float32) {
	c.gl.UniformMatrix4fv(uniform(dst), src)
}

func (c *Context) UseProgram(p gles.Program) { c.gl.UseProgram(program(p)) }

func (c *Context) VertexAttribPointer(dst gles.Attrib, size int, ty gles.Enum, normalized bool, stride, offset int) {
	c.gl.VertexAttribPointer(attrib(dst), size, gl.Enum(ty), normalized, stride, offset)
}

func (c *Context) Viewport(x, y, width, height int) { c.gl.Viewport(x, y, width, height) }

var _ gles.Context = (*Context)(nil)
