package renderer

import (
	"fmt"

	"VideoSurface/internal/config"
	"VideoSurface/internal/gles"
)

// Stage identifies the pipeline stage a diagnostic belongs to.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	// StageProgram tags link diagnostics.
	StageProgram
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageProgram:
		return "program"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

func (s Stage) shaderType() gles.Enum {
	if s == StageFragment {
		return gles.FRAGMENT_SHADER
	}
	return gles.VERTEX_SHADER
}

// ShaderSource is the text of one shader stage.
type ShaderSource struct {
	Stage Stage
	Text  string
}

func VertexSource(text string) ShaderSource   { return ShaderSource{Stage: StageVertex, Text: text} }
func FragmentSource(text string) ShaderSource { return ShaderSource{Stage: StageFragment, Text: text} }

// Names of the shader variables the draw loop binds.
const (
	attribPosition   = "vPosition"
	attribTexCoord   = "vTexCoordinate"
	uniformSampler   = "sTexture"
	uniformTexMatrix = "textureTransform"
	uniformProj      = "uProjection"
	uniformModelView = "uModelView"
)

// =============================================================
//
//	GLES 2 (external image and 2D sampler variants)
//
// =============================================================

const glesQuadVertexShader = `attribute vec4 vPosition;
attribute vec4 vTexCoordinate;
uniform mat4 textureTransform;
varying vec2 v_TexCoordinate;

void main() {
    v_TexCoordinate = (textureTransform * vTexCoordinate).xy;
    gl_Position = vPosition;
}
`

const glesCubeVertexShader = `attribute vec4 vPosition;
attribute vec4 vTexCoordinate;
uniform mat4 textureTransform;
uniform mat4 uProjection;
uniform mat4 uModelView;
varying vec2 v_TexCoordinate;

void main() {
    v_TexCoordinate = (textureTransform * vTexCoordinate).xy;
    gl_Position = uProjection * uModelView * vPosition;
}
`

const glesExternalFragmentShader = `#extension GL_OES_EGL_image_external : require
precision mediump float;
uniform samplerExternalOES sTexture;
varying vec2 v_TexCoordinate;

void main() {
    gl_FragColor = texture2D(sTexture, v_TexCoordinate);
}
`

const gles2DFragmentShader = `precision mediump float;
uniform sampler2D sTexture;
varying vec2 v_TexCoordinate;

void main() {
    gl_FragColor = texture2D(sTexture, v_TexCoordinate);
}
`

// =============================================================
//
//	Desktop 4.1 core (preview)
//
// =============================================================

const desktopQuadVertexShader = `#version 410 core
in vec4 vPosition;
in vec4 vTexCoordinate;
uniform mat4 textureTransform;
out vec2 v_TexCoordinate;

void main() {
    v_TexCoordinate = (textureTransform * vTexCoordinate).xy;
    gl_Position = vPosition;
}
`

const desktopCubeVertexShader = `#version 410 core
in vec4 vPosition;
in vec4 vTexCoordinate;
uniform mat4 textureTransform;
uniform mat4 uProjection;
uniform mat4 uModelView;
out vec2 v_TexCoordinate;

void main() {
    v_TexCoordinate = (textureTransform * vTexCoordinate).xy;
    gl_Position = uProjection * uModelView * vPosition;
}
`

const desktopFragmentShader = `#version 410 core
uniform sampler2D sTexture;
in vec2 v_TexCoordinate;
out vec4 fragColor;

void main() {
    fragColor = texture(sTexture, v_TexCoordinate);
}
`

// ShaderSources returns the vertex and fragment stages for a profile and
// shape. The quad passes positions through untransformed; the cube applies
// projection and model-view.
func ShaderSources(profile config.Profile, shape config.Shape) (vertex, fragment ShaderSource) {
	cube := shape == config.ShapeCube
	switch profile {
	case config.ProfileDesktop:
		if cube {
			return VertexSource(desktopCubeVertexShader), FragmentSource(desktopFragmentShader)
		}
		return VertexSource(desktopQuadVertexShader), FragmentSource(desktopFragmentShader)
	case config.ProfileGLES:
		if cube {
			return VertexSource(glesCubeVertexShader), FragmentSource(gles2DFragmentShader)
		}
		return VertexSource(glesQuadVertexShader), FragmentSource(gles2DFragmentShader)
	}
	if cube {
		return VertexSource(glesCubeVertexShader), FragmentSource(glesExternalFragmentShader)
	}
	return VertexSource(glesQuadVertexShader), FragmentSource(glesExternalFragmentShader)
}

// TextureTarget is the bind point the profile samples from.
func TextureTarget(profile config.Profile) gles.Enum {
	if profile == config.ProfileExternal {
		return gles.TEXTURE_EXTERNAL_OES
	}
	return gles.TEXTURE_2D
}
