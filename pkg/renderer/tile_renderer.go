package renderer

import (
	"context"
	"math"
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// BytesPerPixel is the size of one RGBA pixel in the frame buffer
const BytesPerPixel = 4

// cancelCheckInterval is how many pixels are rendered between context checks
const cancelCheckInterval = 256

// TileRenderer handles the actual rendering of pixel chunks using an integrator.
// It holds no mutable state, so one instance is shared by every worker.
type TileRenderer struct {
	world         geometry.Hittable
	camera        *Camera
	integrator    integrator.Integrator
	width, height int
	raysPerPixel  int
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, width, height, raysPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:        world,
		camera:       camera,
		integrator:   integratorInst,
		width:        width,
		height:       height,
		raysPerPixel: raysPerPixel,
	}
}

// RenderChunk renders every pixel in the chunk and returns its RGBA bytes.
// Pixel i of the chunk occupies bytes [4*(i-From), 4*(i-From)+4).
func (tr *TileRenderer) RenderChunk(ctx context.Context, chunk WorkChunk, random *rand.Rand) ([]byte, error) {
	pixels := make([]byte, chunk.Len()*BytesPerPixel)

	for i := chunk.From; i < chunk.To; i++ {
		if (i-chunk.From)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		color := tr.samplePixel(i%tr.width, i/tr.width, random)
		offset := (i - chunk.From) * BytesPerPixel
		pixels[offset] = ClampToByte(color.X)
		pixels[offset+1] = ClampToByte(color.Y)
		pixels[offset+2] = ClampToByte(color.Z)
		pixels[offset+3] = 255
	}

	return pixels, nil
}

// samplePixel averages raysPerPixel jittered samples for the pixel at (col, row).
// Row 0 is the top of the image.
func (tr *TileRenderer) samplePixel(col, row int, random *rand.Rand) core.Vec3 {
	var color core.Vec3
	for s := 0; s < tr.raysPerPixel; s++ {
		u := (float64(col) + random.Float64()) / float64(tr.width)
		v := 1.0 - (float64(row)+random.Float64())/float64(tr.height)
		ray := tr.camera.GetRay(u, v, random)
		color = color.Add(tr.integrator.RayColor(tr.world, ray, random, 1))
	}
	return color.Divide(float64(tr.raysPerPixel))
}

// ClampToByte applies gamma 2 by square root and maps [0,1] onto [0,255]
func ClampToByte(channel float64) byte {
	c := math.Sqrt(channel)
	c = math.Max(0, math.Min(1, c))
	return byte(c * 255.99)
}
