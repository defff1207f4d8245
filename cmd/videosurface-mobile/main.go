// Command videosurface-mobile runs the video-surface renderer on a GLES2
// context provided by golang.org/x/mobile, fed by a synthetic noise source.
package main

import (
	"context"

	"VideoSurface/internal/config"
	"VideoSurface/internal/gles/mobile"
	"VideoSurface/internal/host"
	"VideoSurface/internal/logger"
	"VideoSurface/internal/renderer"

	"go.uber.org/zap"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"
)

// session holds everything tied to one visible GL context.
type session struct {
	pool     *host.TexturePool
	surface  *host.Surface
	renderer *renderer.Renderer
	cancel   context.CancelFunc
	done     chan struct{}
}

type paintListener struct {
	surface *host.Surface
	app     app.App
}

func (l paintListener) OnFrameAvailable(frame host.Frame) {
	l.surface.OnFrameAvailable(frame)
	l.app.Send(paint.Event{})
}

func start(a app.App, glctx gl.Context, cfg config.Config) *session {
	ctx := mobile.NewContext(glctx)
	pool, err := host.NewTexturePool(ctx, renderer.TextureTarget(cfg.Render.Profile), 1)
	if err != nil {
		logger.Log.Error("Could not allocate video texture", zap.Error(err))
		return nil
	}
	s := &session{
		pool:    pool,
		surface: host.NewSurface(ctx, pool),
		done:    make(chan struct{}),
	}
	s.surface.SetTransform(host.FlipVertical())
	s.renderer = renderer.New(ctx, s.surface, nil, cfg.Render)

	srcCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	src := host.NewNoiseSource(cfg.Source.Width, cfg.Source.Height, cfg.Source.FPS, cfg.Source.Seed)
	go func() {
		defer close(s.done)
		_ = src.Run(srcCtx, paintListener{surface: s.surface, app: a})
	}()
	return s
}

// resize initializes the renderer on the first size event and only moves
// the viewport afterwards.
func (s *session) resize(sz size.Event) {
	if sz.WidthPx == 0 || sz.HeightPx == 0 {
		return
	}
	var err error
	switch s.renderer.State() {
	case renderer.Ready:
		err = s.renderer.Resize(sz.WidthPx, sz.HeightPx)
	default:
		err = s.renderer.Initialize(sz.WidthPx, sz.HeightPx)
	}
	if err != nil {
		logger.Log.Error("Surface change failed", zap.Error(err))
	}
}

func (s *session) stop() {
	s.cancel()
	<-s.done
	s.renderer.Release()
	s.pool.Release()
}

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := config.Default()
	cfg.Render.Profile = config.ProfileGLES

	app.Main(func(a app.App) {
		var s *session
		var sz size.Event
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					glctx, ok := e.DrawContext.(gl.Context)
					if !ok {
						continue
					}
					s = start(a, glctx, cfg)
					if s != nil {
						s.resize(sz)
					}
				case lifecycle.CrossOff:
					if s != nil {
						s.stop()
						s = nil
					}
				}
			case size.Event:
				sz = e
				if s != nil {
					s.resize(sz)
				}
			case paint.Event:
				if s == nil || e.External {
					continue
				}
				if s.surface.Draw(s.renderer) {
					a.Publish()
				}
			}
		}
	})
}
