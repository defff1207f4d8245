// Command videosurface previews the video-surface renderer in a desktop
// window, fed by a synthetic noise source.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"VideoSurface/internal/config"
	"VideoSurface/internal/gles/desktop"
	"VideoSurface/internal/host"
	"VideoSurface/internal/logger"
	"VideoSurface/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	// GL calls must come from the thread that owns the context.
	runtime.LockOSThread()
}

// wakeListener forwards frames to the surface and wakes the event loop.
type wakeListener struct {
	surface *host.Surface
}

func (l wakeListener) OnFrameAvailable(frame host.Frame) {
	l.surface.OnFrameAvailable(frame)
	glfw.PostEmptyEvent()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	width := flag.Int("width", 1024, "window width")
	height := flag.Int("height", 768, "window height")
	shape := flag.String("shape", "", "override the configured shape (quad or cube)")
	debug := flag.Bool("debug", false, "check GL errors after each frame")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	if err := run(*configPath, *width, *height, *shape, *debug); err != nil {
		logger.Log.Error("videosurface failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(configPath string, width, height int, shape string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Render.Profile = config.ProfileDesktop
	if shape != "" {
		cfg.Render.Shape = config.Shape(shape)
	}
	if debug {
		cfg.Render.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.SetDebug(cfg.Render.Debug)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, "VideoSurface", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	ctx, err := desktop.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Release()
	logger.Log.Info("OpenGL context ready", zap.String("version", ctx.Version()))

	pool, err := host.NewTexturePool(ctx, renderer.TextureTarget(cfg.Render.Profile), 1)
	if err != nil {
		return err
	}
	defer pool.Release()
	surface := host.NewSurface(ctx, pool)
	// Frames arrive top row first; GL samples t=0 at the bottom.
	surface.SetTransform(host.FlipVertical())

	r := renderer.New(ctx, surface, nil, cfg.Render)
	fbWidth, fbHeight := window.GetFramebufferSize()
	if err := r.Initialize(fbWidth, fbHeight); err != nil {
		return err
	}
	defer r.Release()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if w == 0 || h == 0 {
			return
		}
		if err := r.Resize(w, h); err != nil {
			logger.Log.Warn("Resize rejected", zap.Int("width", w), zap.Int("height", h), zap.Error(err))
		}
	})

	srcCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	src := host.NewNoiseSource(cfg.Source.Width, cfg.Source.Height, cfg.Source.FPS, cfg.Source.Seed)
	go func() {
		defer close(done)
		_ = src.Run(srcCtx, wakeListener{surface: surface})
	}()
	defer func() {
		cancel()
		<-done
	}()

	for !window.ShouldClose() {
		if surface.Draw(r) {
			window.SwapBuffers()
		}
		glfw.WaitEvents()
	}

	seq, frames := surface.Latched()
	logger.Log.Info("Shutting down", zap.Uint64("last_frame", seq), zap.Uint64("frames", frames))
	return nil
}
