package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int           // Number of rays per pixel
	MaxDepth        int           // Maximum ray bounce depth
	ScanlineDelay   time.Duration // Pause after each scanline, only paces progress output
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// MergeSamplingConfig merges override values into a base config.
// Zero-valued fields in override are ignored.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.ScanlineDelay != 0 {
		result.ScanlineDelay = override.ScanlineDelay
	}
	return result
}

// RowWriter receives every finished scanline, top row first
type RowWriter interface {
	WriteRow(y int, row []core.Color) error
}

// Raytracer handles the rendering process
type Raytracer struct {
	world            core.Shape
	camera           *Camera
	integrator       integrator.Integrator
	config           SamplingConfig
	sampler          core.Sampler
	logger           core.Logger
	pixelSampleScale float64 // Color scale factor for a sum of pixel samples
	sleep            func(time.Duration)
}

// NewRaytracer creates a new raytracer for the given world and camera.
// A nil logger discards progress output.
func NewRaytracer(world core.Shape, camera *Camera, config SamplingConfig, sampler core.Sampler, logger core.Logger) (*Raytracer, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: world is nil", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is nil", ErrInvalidConfig)
	}
	if sampler == nil {
		return nil, fmt.Errorf("%w: sampler is nil", ErrInvalidConfig)
	}
	if config.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, config.SamplesPerPixel)
	}
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, config.MaxDepth)
	}
	if config.ScanlineDelay < 0 {
		return nil, fmt.Errorf("%w: scanline delay must not be negative, got %v", ErrInvalidConfig, config.ScanlineDelay)
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		world:            world,
		camera:           camera,
		integrator:       integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:           config,
		sampler:          sampler,
		logger:           logger,
		pixelSampleScale: 1.0 / float64(config.SamplesPerPixel),
		sleep:            time.Sleep,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render renders the whole image and returns the averaged linear colors
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	frame, stats, _ := rt.RenderTo(nil)
	return frame, stats
}

// RenderTo renders the whole image, handing each scanline to rw as soon as it
// is done. A write error aborts the render and is returned.
func (rt *Raytracer) RenderTo(rw RowWriter) (*Frame, RenderStats, error) {
	start := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	frame := NewFrame(width, height)

	for j := 0; j < height; j++ {
		rt.logger.Printf("\rScanlines remaining: %d ", height-j)
		if rt.config.ScanlineDelay > 0 {
			rt.sleep(rt.config.ScanlineDelay)
		}

		for i := 0; i < width; i++ {
			frame.Set(i, j, rt.samplePixel(i, j))
		}

		if rw != nil {
			if err := rw.WriteRow(j, frame.Row(j)); err != nil {
				rt.logger.Printf("\n")
				return frame, rt.stats(width, j+1, start), fmt.Errorf("writing scanline %d: %w", j, err)
			}
		}
	}

	rt.logger.Printf("\rDone.                 \n")
	return frame, rt.stats(width, height, start), nil
}

// samplePixel averages SamplesPerPixel independently jittered samples
func (rt *Raytracer) samplePixel(i, j int) core.Color {
	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler))
	}
	return ps.Scaled(rt.pixelSampleScale)
}

func (rt *Raytracer) stats(width, rows int, start time.Time) RenderStats {
	pixels := width * rows
	stats := RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * rt.config.SamplesPerPixel,
		MaxDepth:     rt.config.MaxDepth,
		Elapsed:      time.Since(start),
	}
	if pixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(pixels)
	}
	return stats
}
