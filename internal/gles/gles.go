// Package gles is the slice of the OpenGL ES 2.0 API the video surface
// renderer talks to. Backends live in the desktop (go-gl) and mobile
// (golang.org/x/mobile/gl) subpackages; glestest records calls for tests.
//
// A Context is bound to the thread that owns the GL context. None of its
// methods are safe for concurrent use.
package gles

// Object handles. The zero value never names a live object.
type (
	Enum    uint32
	Shader  uint32
	Program uint32
	Buffer  uint32
	Texture uint32
)

// Locations. -1 means the name is not an active variable of the program.
type (
	Uniform int32
	Attrib  int32
)

const (
	InvalidUniform Uniform = -1
	InvalidAttrib  Attrib  = -1
)

const (
	FALSE Enum = 0
	TRUE  Enum = 1

	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	DEPTH_BUFFER_BIT Enum = 0x00000100
	COLOR_BUFFER_BIT Enum = 0x00004000

	TRIANGLES    Enum = 0x0004
	TRIANGLE_FAN Enum = 0x0006

	DEPTH_TEST Enum = 0x0B71

	UNSIGNED_BYTE  Enum = 0x1401
	UNSIGNED_SHORT Enum = 0x1403
	FLOAT          Enum = 0x1406
	RGBA           Enum = 0x1908

	TEXTURE_2D           Enum = 0x0DE1
	TEXTURE_EXTERNAL_OES Enum = 0x8D65
	TEXTURE0             Enum = 0x84C0
	TEXTURE_MAG_FILTER   Enum = 0x2800
	TEXTURE_MIN_FILTER   Enum = 0x2801
	TEXTURE_WRAP_S       Enum = 0x2802
	TEXTURE_WRAP_T       Enum = 0x2803
	LINEAR               Enum = 0x2601
	CLAMP_TO_EDGE        Enum = 0x812F

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4

	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	INFO_LOG_LENGTH Enum = 0x8B84
)

// Context is a GLES2 rendering context. Info logs come back as owned strings;
// backends hide the length-then-fetch protocol.
type Context interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindTexture(target Enum, t Texture)
	BufferData(target Enum, src []byte, usage Enum)
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	DeleteBuffer(b Buffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteTexture(t Texture)
	DetachShader(p Program, s Shader)
	Disable(capability Enum)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	Enable(capability Enum)
	EnableVertexAttribArray(a Attrib)
	GetAttribLocation(p Program, name string) Attrib
	GetError() Enum
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, width, height int, format Enum, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	Uniform1i(dst Uniform, v int)
	UniformMatrix4fv(dst Uniform, src []float32)
	UseProgram(p Program)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
