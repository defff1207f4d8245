package gles

import (
	"fmt"

	"VideoSurface/internal/logger"

	"go.uber.org/zap"
)

// maxDrainedErrors bounds DrainErrors when a lost context keeps reporting.
const maxDrainedErrors = 32

// ErrorString names a glGetError code.
func ErrorString(code Enum) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04X", uint32(code))
}

// DrainErrors pops every pending GL error, logging each one against op, and
// returns the codes in the order GL reported them.
func DrainErrors(ctx Context, op string) []Enum {
	var codes []Enum
	for i := 0; i < maxDrainedErrors; i++ {
		code := ctx.GetError()
		if code == NO_ERROR {
			break
		}
		codes = append(codes, code)
		logger.Log.Error("GL error",
			zap.String("op", op),
			zap.String("error", ErrorString(code)))
	}
	return codes
}
