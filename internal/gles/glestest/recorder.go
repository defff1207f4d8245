// Package glestest provides a gles.Context that records every call instead
// of talking to a GPU. It simulates enough of the shader toolchain to
// exercise compile and link failures.
package glestest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"VideoSurface/internal/gles"
)

// Call is one recorded GL entry point with its arguments.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

type shaderObject struct {
	kind     gles.Enum
	source   string
	compiled bool
	log      string
	decls    []decl
}

type programObject struct {
	attached map[gles.Shader]bool
	linked   bool
	log      string
	uniforms map[string]gles.Uniform
	attribs  map[string]gles.Attrib
}

type decl struct {
	qualifier string
	typ       string
	name      string
}

// Recorder implements gles.Context. The zero value is not usable; call New.
type Recorder struct {
	Calls []Call

	// FailCreateShader and FailCreateProgram make the matching Create call
	// return the zero handle, as a driver out of objects would.
	FailCreateShader  bool
	FailCreateProgram bool

	// PendingErrors is returned one code per GetError call.
	PendingErrors []gles.Enum

	// UniformValues holds the last matrix uploaded to each location.
	UniformValues map[gles.Uniform][]float32
	// UniformInts holds the last Uniform1i value per location.
	UniformInts map[gles.Uniform]int

	next     uint32
	shaders  map[gles.Shader]*shaderObject
	programs map[gles.Program]*programObject
	buffers  map[gles.Buffer][]byte
	textures map[gles.Texture]bool
	enabled  map[gles.Enum]bool
	attribs  map[gles.Attrib]bool
	current  gles.Program
	viewport [4]int
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		UniformValues: make(map[gles.Uniform][]float32),
		UniformInts:   make(map[gles.Uniform]int),
		shaders:       make(map[gles.Shader]*shaderObject),
		programs:      make(map[gles.Program]*programObject),
		buffers:       make(map[gles.Buffer][]byte),
		textures:      make(map[gles.Texture]bool),
		enabled:       make(map[gles.Enum]bool),
		attribs:       make(map[gles.Attrib]bool),
	}
}

func (r *Recorder) record(name string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc() uint32 {
	r.next++
	return r.next
}

// Reset forgets recorded calls but keeps GPU object state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Find returns every recorded call with the given name, in order.
func (r *Recorder) Find(name string) []Call {
	var found []Call
	for _, c := range r.Calls {
		if c.Name == name {
			found = append(found, c)
		}
	}
	return found
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	return len(r.Find(name))
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(name string) (Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Name == name {
			return r.Calls[i], true
		}
	}
	return Call{}, false
}

// Index returns the position of the first call named name at or after from,
// or -1.
func (r *Recorder) Index(name string, from int) int {
	for i := from; i < len(r.Calls); i++ {
		if r.Calls[i].Name == name {
			return i
		}
	}
	return -1
}

// LiveShaders reports shader objects that have not been deleted.
func (r *Recorder) LiveShaders() int { return len(r.shaders) }

// LivePrograms reports program objects that have not been deleted.
func (r *Recorder) LivePrograms() int { return len(r.programs) }

// LiveBuffers reports buffer objects that have not been deleted.
func (r *Recorder) LiveBuffers() int { return len(r.buffers) }

// LiveTextures reports texture objects that have not been deleted.
func (r *Recorder) LiveTextures() int { return len(r.textures) }

// IsEnabled reports whether a capability is currently enabled.
func (r *Recorder) IsEnabled(capability gles.Enum) bool { return r.enabled[capability] }

// EnabledAttribs lists vertex attribute arrays currently enabled.
func (r *Recorder) EnabledAttribs() []gles.Attrib {
	var out []gles.Attrib
	for a, on := range r.attribs {
		if on {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ViewportRect returns the last viewport rectangle.
func (r *Recorder) ViewportRect() [4]int { return r.viewport }

// CurrentProgram returns the program last passed to UseProgram.
func (r *Recorder) CurrentProgram() gles.Program { return r.current }

// BufferContents returns the bytes last uploaded to b.
func (r *Recorder) BufferContents(b gles.Buffer) []byte { return r.buffers[b] }

// UniformLocation resolves a uniform the way the linked program would,
// without recording a call.
func (r *Recorder) UniformLocation(p gles.Program, name string) gles.Uniform {
	if prog, ok := r.programs[p]; ok && prog.linked {
		if loc, ok := prog.uniforms[name]; ok {
			return loc
		}
	}
	return gles.InvalidUniform
}

// AttribLocation resolves an attribute without recording a call.
func (r *Recorder) AttribLocation(p gles.Program, name string) gles.Attrib {
	if prog, ok := r.programs[p]; ok && prog.linked {
		if loc, ok := prog.attribs[name]; ok {
			return loc
		}
	}
	return gles.InvalidAttrib
}

func (r *Recorder) ActiveTexture(texture gles.Enum) { r.record("ActiveTexture", texture) }

func (r *Recorder) AttachShader(p gles.Program, s gles.Shader) {
	r.record("AttachShader", p, s)
	if prog, ok := r.programs[p]; ok {
		prog.attached[s] = true
	}
}

func (r *Recorder) BindBuffer(target gles.Enum, b gles.Buffer) { r.record("BindBuffer", target, b) }

func (r *Recorder) BindTexture(target gles.Enum, t gles.Texture) { r.record("BindTexture", target, t) }

func (r *Recorder) BufferData(target gles.Enum, src []byte, usage gles.Enum) {
	r.record("BufferData", target, len(src), usage)
	// The bound buffer is the last BindBuffer for this target.
	for i := len(r.Calls) - 1; i >= 0; i-- {
		c := r.Calls[i]
		if c.Name == "BindBuffer" && c.Args[0] == target {
			b := c.Args[1].(gles.Buffer)
			if _, ok := r.buffers[b]; ok {
				r.buffers[b] = append([]byte(nil), src...)
			}
			return
		}
	}
}

func (r *Recorder) Clear(mask gles.Enum) { r.record("Clear", mask) }

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) CompileShader(s gles.Shader) {
	r.record("CompileShader", s)
	sh, ok := r.shaders[s]
	if !ok {
		return
	}
	sh.decls = parseDecls(sh.source)
	sh.log = checkSyntax(sh.source)
	sh.compiled = sh.log == ""
}

func (r *Recorder) CreateBuffer() gles.Buffer {
	b := gles.Buffer(r.alloc())
	r.buffers[b] = []byte{}
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) CreateProgram() gles.Program {
	if r.FailCreateProgram {
		r.record("CreateProgram", gles.Program(0))
		return 0
	}
	p := gles.Program(r.alloc())
	r.programs[p] = &programObject{attached: make(map[gles.Shader]bool)}
	r.record("CreateProgram", p)
	return p
}

func (r *Recorder) CreateShader(ty gles.Enum) gles.Shader {
	if r.FailCreateShader {
		r.record("CreateShader", ty, gles.Shader(0))
		return 0
	}
	s := gles.Shader(r.alloc())
	r.shaders[s] = &shaderObject{kind: ty}
	r.record("CreateShader", ty, s)
	return s
}

func (r *Recorder) CreateTexture() gles.Texture {
	t := gles.Texture(r.alloc())
	r.textures[t] = true
	r.record("CreateTexture", t)
	return t
}

func (r *Recorder) DeleteBuffer(b gles.Buffer) {
	r.record("DeleteBuffer", b)
	delete(r.buffers, b)
}

func (r *Recorder) DeleteProgram(p gles.Program) {
	r.record("DeleteProgram", p)
	delete(r.programs, p)
	if r.current == p {
		r.current = 0
	}
}

func (r *Recorder) DeleteShader(s gles.Shader) {
	r.record("DeleteShader", s)
	delete(r.shaders, s)
}

func (r *Recorder) DeleteTexture(t gles.Texture) {
	r.record("DeleteTexture", t)
	delete(r.textures, t)
}

func (r *Recorder) DetachShader(p gles.Program, s gles.Shader) {
	r.record("DetachShader", p, s)
	if prog, ok := r.programs[p]; ok {
		delete(prog.attached, s)
	}
}

func (r *Recorder) Disable(capability gles.Enum) {
	r.record("Disable", capability)
	r.enabled[capability] = false
}

func (r *Recorder) DisableVertexAttribArray(a gles.Attrib) {
	r.record("DisableVertexAttribArray", a)
	r.attribs[a] = false
}

func (r *Recorder) DrawArrays(mode gles.Enum, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gles.Enum, count int, ty gles.Enum, offset int) {
	r.record("DrawElements", mode, count, ty, offset)
}

func (r *Recorder) Enable(capability gles.Enum) {
	r.record("Enable", capability)
	r.enabled[capability] = true
}

func (r *Recorder) EnableVertexAttribArray(a gles.Attrib) {
	r.record("EnableVertexAttribArray", a)
	r.attribs[a] = true
}

func (r *Recorder) GetAttribLocation(p gles.Program, name string) gles.Attrib {
	loc := r.AttribLocation(p, name)
	r.record("GetAttribLocation", p, name)
	return loc
}

func (r *Recorder) GetError() gles.Enum {
	r.record("GetError")
	if len(r.PendingErrors) == 0 {
		return gles.NO_ERROR
	}
	code := r.PendingErrors[0]
	r.PendingErrors = r.PendingErrors[1:]
	return code
}

func (r *Recorder) GetProgrami(p gles.Program, pname gles.Enum) int {
	r.record("GetProgrami", p, pname)
	prog, ok := r.programs[p]
	if !ok {
		return 0
	}
	switch pname {
	case gles.LINK_STATUS:
		if prog.linked {
			return int(gles.TRUE)
		}
		return int(gles.FALSE)
	case gles.INFO_LOG_LENGTH:
		if prog.log == "" {
			return 0
		}
		return len(prog.log) + 1
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(p gles.Program) string {
	r.record("GetProgramInfoLog", p)
	if prog, ok := r.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (r *Recorder) GetShaderi(s gles.Shader, pname gles.Enum) int {
	r.record("GetShaderi", s, pname)
	sh, ok := r.shaders[s]
	if !ok {
		return 0
	}
	switch pname {
	case gles.COMPILE_STATUS:
		if sh.compiled {
			return int(gles.TRUE)
		}
		return int(gles.FALSE)
	case gles.INFO_LOG_LENGTH:
		if sh.log == "" {
			return 0
		}
		return len(sh.log) + 1
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(s gles.Shader) string {
	r.record("GetShaderInfoLog", s)
	if sh, ok := r.shaders[s]; ok {
		return sh.log
	}
	return ""
}

func (r *Recorder) GetUniformLocation(p gles.Program, name string) gles.Uniform {
	loc := r.UniformLocation(p, name)
	r.record("GetUniformLocation", p, name)
	return loc
}

func (r *Recorder) LinkProgram(p gles.Program) {
	r.record("LinkProgram", p)
	prog, ok := r.programs[p]
	if !ok {
		return
	}
	prog.linked = false
	prog.log = r.link(prog)
	prog.linked = prog.log == ""
}

func (r *Recorder) ShaderSource(s gles.Shader, src string) {
	r.record("ShaderSource", s)
	if sh, ok := r.shaders[s]; ok {
		sh.source = src
	}
}

func (r *Recorder) TexImage2D(target gles.Enum, level int, width, height int, format gles.Enum, ty gles.Enum, data []byte) {
	r.record("TexImage2D", target, level, width, height, format, ty, len(data))
}

func (r *Recorder) TexParameteri(target, pname gles.Enum, param int) {
	r.record("TexParameteri", target, pname, param)
}

func (r *Recorder) Uniform1i(dst gles.Uniform, v int) {
	r.record("Uniform1i", dst, v)
	r.UniformInts[dst] = v
}

func (r *Recorder) UniformMatrix4fv(dst gles.Uniform, src []float32) {
	r.record("UniformMatrix4fv", dst, len(src))
	r.UniformValues[dst] = append([]float32(nil), src...)
}

func (r *Recorder) UseProgram(p gles.Program) {
	r.record("UseProgram", p)
	r.current = p
}

func (r *Recorder) VertexAttribPointer(dst gles.Attrib, size int, ty gles.Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
	r.viewport = [4]int{x, y, width, height}
}

var (
	declPattern = regexp.MustCompile(`(?m)\b(uniform|attribute|varying|in|out)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
	// A statement that runs into a closing brace without its semicolon.
	unterminated = regexp.MustCompile(`[^;{}\s]\s*}`)
)

func parseDecls(src string) []decl {
	var out []decl
	for _, m := range declPattern.FindAllStringSubmatch(src, -1) {
		out = append(out, decl{qualifier: m[1], typ: m[2], name: m[3]})
	}
	return out
}

func checkSyntax(src string) string {
	switch {
	case strings.TrimSpace(src) == "":
		return "ERROR: 0:1: '' : empty shader source"
	case strings.Count(src, "{") != strings.Count(src, "}"):
		return "ERROR: 0:1: '}' : unbalanced braces"
	case !strings.Contains(src, "void main"):
		return "ERROR: 0:1: 'main' : missing entry point"
	}
	if loc := unterminated.FindStringIndex(src); loc != nil {
		line := strings.Count(src[:loc[1]], "\n") + 1
		return fmt.Sprintf("ERROR: 0:%d: '}' : syntax error, expected ';'", line)
	}
	return ""
}

// link mimics the checks a GLES2 linker performs that matter to the renderer:
// exactly one compiled shader per stage, and every fragment input matched by
// a vertex output of the same type.
func (r *Recorder) link(prog *programObject) string {
	var vertex, fragment *shaderObject
	for s := range prog.attached {
		sh, ok := r.shaders[s]
		if !ok || !sh.compiled {
			return "error: attached shader is not compiled"
		}
		switch sh.kind {
		case gles.VERTEX_SHADER:
			vertex = sh
		case gles.FRAGMENT_SHADER:
			fragment = sh
		}
	}
	if vertex == nil || fragment == nil {
		return "error: program needs a vertex and a fragment shader"
	}

	outputs := make(map[string]string)
	for _, d := range vertex.decls {
		if d.qualifier == "varying" || d.qualifier == "out" {
			outputs[d.name] = d.typ
		}
	}
	for _, d := range fragment.decls {
		if d.qualifier != "varying" && d.qualifier != "in" {
			continue
		}
		typ, ok := outputs[d.name]
		if !ok {
			return fmt.Sprintf("error: fragment input '%s' has no matching vertex output", d.name)
		}
		if typ != d.typ {
			return fmt.Sprintf("error: '%s' declared as %s in vertex shader but %s in fragment shader", d.name, typ, d.typ)
		}
	}

	prog.uniforms = make(map[string]gles.Uniform)
	prog.attribs = make(map[string]gles.Attrib)
	for _, sh := range []*shaderObject{vertex, fragment} {
		for _, d := range sh.decls {
			switch {
			case d.qualifier == "uniform":
				if _, ok := prog.uniforms[d.name]; !ok {
					prog.uniforms[d.name] = gles.Uniform(len(prog.uniforms))
				}
			case sh == vertex && (d.qualifier == "attribute" || d.qualifier == "in"):
				prog.attribs[d.name] = gles.Attrib(len(prog.attribs))
			}
		}
	}
	return ""
}
