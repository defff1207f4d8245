package renderer

import "VideoSurface/internal/gles"

// TextureBinding is the texture unit the video is sampled from. The texture
// names bound to it belong to the host; binding never allocates or deletes.
type TextureBinding struct {
	Unit   int
	Target gles.Enum
}

// Bind makes name the source for Target on Unit. Cheap enough to call every
// frame.
func (tb TextureBinding) Bind(ctx gles.Context, name gles.Texture) {
	ctx.ActiveTexture(gles.TEXTURE0 + gles.Enum(tb.Unit))
	ctx.BindTexture(tb.Target, name)
}

// Unbind detaches whatever is bound to Target on Unit.
func (tb TextureBinding) Unbind(ctx gles.Context) {
	ctx.ActiveTexture(gles.TEXTURE0 + gles.Enum(tb.Unit))
	ctx.BindTexture(tb.Target, 0)
}
