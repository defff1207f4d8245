package host

import (
	"context"
	"math"
	"time"

	"VideoSurface/internal/logger"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

// Frame is one decoded RGBA picture, rows top to bottom.
type Frame struct {
	Width, Height int
	Pix           []byte
	Sequence      uint64
}

// FrameListener is told when a new frame is ready. It is called from the
// source's goroutine.
type FrameListener interface {
	OnFrameAvailable(frame Frame)
}

// NoiseSource stands in for a video decoder: it renders drifting Perlin
// noise at a fixed rate.
type NoiseSource struct {
	width, height int
	interval      time.Duration
	noise         *perlin.Perlin
}

// NewNoiseSource creates a source producing width x height frames at fps.
func NewNoiseSource(width, height, fps int, seed int64) *NoiseSource {
	return &NoiseSource{
		width:    width,
		height:   height,
		interval: time.Second / time.Duration(fps),
		noise:    perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Render produces frame seq. It is deterministic for a given seed.
func (s *NoiseSource) Render(seq uint64) Frame {
	pix := make([]byte, s.width*s.height*4)
	t := float64(seq) * 0.05
	for y := 0; y < s.height; y++ {
		fy := float64(y) / float64(s.height) * 4
		for x := 0; x < s.width; x++ {
			fx := float64(x) / float64(s.width) * 4
			n := s.noise.Noise3D(fx, fy, t)
			i := (y*s.width + x) * 4
			pix[i+0] = channel(n)
			pix[i+1] = channel(n + 0.25*math.Sin(t+fx))
			pix[i+2] = channel(-n)
			pix[i+3] = 0xff
		}
	}
	return Frame{Width: s.width, Height: s.height, Pix: pix, Sequence: seq}
}

// channel maps noise in roughly [-1, 1] to a byte.
func channel(v float64) byte {
	v = (v + 1) * 127.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// Run delivers frames to l until ctx is cancelled.
func (s *NoiseSource) Run(ctx context.Context, l FrameListener) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Log.Info("Frame source started",
		zap.Int("width", s.width),
		zap.Int("height", s.height),
		zap.Duration("interval", s.interval))

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("Frame source stopped", zap.Uint64("frames", seq))
			return ctx.Err()
		case <-ticker.C:
			l.OnFrameAvailable(s.Render(seq))
			seq++
		}
	}
}
