// Package host is the collaborator that owns the video textures: it
// allocates the texture names, latches decoded frames into them and supplies
// the per-frame texture transform. On a device this is the platform's video
// surface; the preview binaries use the synthetic source in this package.
package host

import (
	"fmt"

	"VideoSurface/internal/gles"
	"VideoSurface/internal/logger"

	"go.uber.org/zap"
)

// TexturePool owns the texture names frames are written into.
type TexturePool struct {
	ctx     gles.Context
	target  gles.Enum
	handles []gles.Texture
}

// NewTexturePool allocates count textures on target with linear filtering
// and edge clamping, the only parameters external images accept.
func NewTexturePool(ctx gles.Context, target gles.Enum, count int) (*TexturePool, error) {
	if count <= 0 {
		return nil, fmt.Errorf("texture pool size %d must be positive", count)
	}
	pool := &TexturePool{ctx: ctx, target: target}
	for i := 0; i < count; i++ {
		t := ctx.CreateTexture()
		if t == 0 {
			pool.Release()
			return nil, fmt.Errorf("allocate texture %d of %d", i+1, count)
		}
		ctx.BindTexture(target, t)
		ctx.TexParameteri(target, gles.TEXTURE_MIN_FILTER, int(gles.LINEAR))
		ctx.TexParameteri(target, gles.TEXTURE_MAG_FILTER, int(gles.LINEAR))
		ctx.TexParameteri(target, gles.TEXTURE_WRAP_S, int(gles.CLAMP_TO_EDGE))
		ctx.TexParameteri(target, gles.TEXTURE_WRAP_T, int(gles.CLAMP_TO_EDGE))
		pool.handles = append(pool.handles, t)
	}
	ctx.BindTexture(target, 0)

	logger.Log.Debug("Texture pool allocated", zap.Int("count", count))
	return pool, nil
}

// Handles returns the pool's texture names.
func (p *TexturePool) Handles() []gles.Texture {
	return p.handles
}

func (p *TexturePool) Target() gles.Enum {
	return p.target
}

// Release deletes every texture in the pool.
func (p *TexturePool) Release() {
	for _, t := range p.handles {
		p.ctx.DeleteTexture(t)
	}
	p.handles = nil
}
