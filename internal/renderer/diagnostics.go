package renderer

import (
	"VideoSurface/internal/logger"

	"go.uber.org/zap"
)

// DiagnosticSink receives shader compile and link logs. The renderer does
// nothing else with them beyond aborting the failed build step.
type DiagnosticSink interface {
	ShaderDiagnostic(stage Stage, message string)
}

// LogSink writes diagnostics to the process logger.
type LogSink struct{}

func (LogSink) ShaderDiagnostic(stage Stage, message string) {
	logger.Log.Error("Shader diagnostic",
		zap.Stringer("stage", stage),
		zap.String("log", message))
}

// DiagnosticFunc adapts a function to DiagnosticSink.
type DiagnosticFunc func(stage Stage, message string)

func (f DiagnosticFunc) ShaderDiagnostic(stage Stage, message string) { f(stage, message) }
