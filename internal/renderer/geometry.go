package renderer

import (
	"encoding/binary"
	"fmt"

	"VideoSurface/internal/config"
	"VideoSurface/internal/gles"

	"golang.org/x/mobile/exp/f32"
)

const (
	positionSize = 3 // x, y, z
	texCoordSize = 4 // s, t, r, q; the texture transform needs the full vec4
)

// Geometry is an immutable textured surface. Positions and TexCoords are
// parallel arrays; Indices, when present, select vertices for Mode.
type Geometry struct {
	Name      string
	Positions []float32
	TexCoords []float32
	Indices   []uint16
	Mode      gles.Enum
	DepthTest bool
}

func (g Geometry) VertexCount() int {
	return len(g.Positions) / positionSize
}

// Indexed reports whether the draw goes through the index buffer.
func (g Geometry) Indexed() bool {
	return len(g.Indices) > 0
}

// Validate checks the parallel arrays line up and every index is in range.
func (g Geometry) Validate() error {
	if len(g.Positions) == 0 || len(g.Positions)%positionSize != 0 {
		return fmt.Errorf("%w: %s has %d position floats", ErrInvalidGeometry, g.Name, len(g.Positions))
	}
	if len(g.TexCoords) != g.VertexCount()*texCoordSize {
		return fmt.Errorf("%w: %s has %d texcoord floats for %d vertices",
			ErrInvalidGeometry, g.Name, len(g.TexCoords), g.VertexCount())
	}
	for i, idx := range g.Indices {
		if int(idx) >= g.VertexCount() {
			return fmt.Errorf("%w: %s index %d = %d out of range", ErrInvalidGeometry, g.Name, i, idx)
		}
	}
	return nil
}

// QuadGeometry is a full-viewport quad drawn as a triangle fan without depth.
func QuadGeometry() Geometry {
	return Geometry{
		Name: "quad",
		Positions: []float32{
			-1, -1, 0,
			-1, 1, 0,
			1, 1, 0,
			1, -1, 0,
		},
		TexCoords: []float32{
			0, 1, 0, 1,
			0, 0, 0, 1,
			1, 0, 0, 1,
			1, 1, 0, 1,
		},
		Mode: gles.TRIANGLE_FAN,
	}
}

// CubeGeometry is a unit-half-extent cube: 24 vertices so every face gets
// its own texture coordinates, 36 indices wound counter-clockwise outward.
func CubeGeometry() Geometry {
	faces := [6][4][3]float32{
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},     // front
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, // back
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, // left
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},     // right
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},     // top
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, // bottom
	}
	faceTex := [4][4]float32{
		{0, 1, 0, 1},
		{1, 1, 0, 1},
		{1, 0, 0, 1},
		{0, 0, 0, 1},
	}

	g := Geometry{
		Name:      "cube",
		Positions: make([]float32, 0, 24*positionSize),
		TexCoords: make([]float32, 0, 24*texCoordSize),
		Indices:   make([]uint16, 0, 36),
		Mode:      gles.TRIANGLES,
		DepthTest: true,
	}
	for f, face := range faces {
		for v, pos := range face {
			g.Positions = append(g.Positions, pos[:]...)
			g.TexCoords = append(g.TexCoords, faceTex[v][:]...)
		}
		base := uint16(f * 4)
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// GeometryFor maps a configured shape to its geometry.
func GeometryFor(shape config.Shape) Geometry {
	if shape == config.ShapeCube {
		return CubeGeometry()
	}
	return QuadGeometry()
}

// geometryBuffers are the GPU copies of a Geometry.
type geometryBuffers struct {
	position gles.Buffer
	texCoord gles.Buffer
	index    gles.Buffer
}

func uploadGeometry(ctx gles.Context, g Geometry) (geometryBuffers, error) {
	var b geometryBuffers
	var cleanup Unwind
	defer cleanup.Unwind()

	upload := func(target gles.Enum, data []byte) (gles.Buffer, error) {
		buf := ctx.CreateBuffer()
		if buf == 0 {
			return 0, fmt.Errorf("create %s buffer: %w", g.Name, ErrAllocation)
		}
		cleanup.Add(func() { ctx.DeleteBuffer(buf) })
		ctx.BindBuffer(target, buf)
		ctx.BufferData(target, data, gles.STATIC_DRAW)
		ctx.BindBuffer(target, 0)
		return buf, nil
	}

	var err error
	if b.position, err = upload(gles.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, g.Positions...)); err != nil {
		return geometryBuffers{}, err
	}
	if b.texCoord, err = upload(gles.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, g.TexCoords...)); err != nil {
		return geometryBuffers{}, err
	}
	if g.Indexed() {
		if b.index, err = upload(gles.ELEMENT_ARRAY_BUFFER, indexBytes(g.Indices)); err != nil {
			return geometryBuffers{}, err
		}
	}
	cleanup.Discard()
	return b, nil
}

func indexBytes(indices []uint16) []byte {
	out := make([]byte, 2*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(out[2*i:], idx)
	}
	return out
}

func (b *geometryBuffers) release(ctx gles.Context) {
	for _, buf := range []*gles.Buffer{&b.position, &b.texCoord, &b.index} {
		if *buf != 0 {
			ctx.DeleteBuffer(*buf)
			*buf = 0
		}
	}
}
