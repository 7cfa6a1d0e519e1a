package output

import (
	"bufio"
	"bytes"
	"fmt"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// renderPPM renders world with the default camera and a constant zero sampler,
// streaming scanlines into a PPM and returning its lines
func renderPPM(t *testing.T, world core.Shape, config renderer.SamplingConfig) (*renderer.Camera, []string) {
	t.Helper()

	camera, err := renderer.NewCamera(renderer.DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	rt, err := renderer.NewRaytracer(world, camera, config, core.NewConstantSampler(0), nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	var buf bytes.Buffer
	pw, err := NewPPMWriter(&buf, camera.ImageWidth(), camera.ImageHeight())
	if err != nil {
		t.Fatalf("Failed to create PPM writer: %v", err)
	}
	if _, _, err := rt.RenderTo(pw); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := pw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return camera, lines
}

func pixelLine(camera *renderer.Camera, lines []string, i, j int) string {
	return lines[3+j*camera.ImageWidth()+i]
}

func whiteSphereWorld() core.Shape {
	white := material.NewLambertian(core.NewColor(1, 1, 1))
	return geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, white))
}

func TestRender_SingleSphere_DepthOneIsBlack(t *testing.T) {
	camera, lines := renderPPM(t, whiteSphereWorld(), renderer.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 1})

	if len(lines) != 3+100*100 {
		t.Fatalf("Expected %d lines, got %d", 3+100*100, len(lines))
	}
	if lines[0] != "P3" || lines[1] != "100 100" || lines[2] != "255" {
		t.Fatalf("Unexpected header %q", lines[:3])
	}

	// A zero jitter offset of -0.5 puts pixel (50, 50)'s sample on the viewport center
	if got := pixelLine(camera, lines, 50, 50); got != "0 0 0" {
		t.Errorf("Expected center pixel to be black, got %q", got)
	}
	// Corner rays miss the sphere and see the sky
	if got := pixelLine(camera, lines, 0, 0); got == "0 0 0" {
		t.Errorf("Expected corner pixel to show sky, got %q", got)
	}
}

func TestRender_SingleSphere_DepthTwoSeesSkyStraightUp(t *testing.T) {
	camera, lines := renderPPM(t, whiteSphereWorld(), renderer.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 2})

	// The center ray hits the sphere at (0,0,-0.5) with normal +Z. With all-zero
	// draws the bounce direction is normal + (0,0,1), a horizontal ray that sees
	// the sky color (0.75, 0.85, 1.0).
	if got := pixelLine(camera, lines, 50, 50); got != "221 236 255" {
		t.Errorf("Expected center pixel %q, got %q", "221 236 255", got)
	}
}

func TestRender_EmptyWorldIsSkyGradient(t *testing.T) {
	camera, lines := renderPPM(t, geometry.NewShapeList(), renderer.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 10})

	sampler := core.NewConstantSampler(0)
	for j := 0; j < camera.ImageHeight(); j++ {
		for i := 0; i < camera.ImageWidth(); i++ {
			r, g, b := ToneMap(integrator.SkyGradient(camera.GetRay(i, j, sampler)))
			expected := fmt.Sprintf("%d %d %d", r, g, b)
			if got := pixelLine(camera, lines, i, j); got != expected {
				t.Fatalf("Pixel (%d,%d): expected %q, got %q", i, j, expected, got)
			}
		}
	}

	// Top rows are bluer than bottom rows
	if pixelLine(camera, lines, 50, 0) == pixelLine(camera, lines, 50, camera.ImageHeight()-1) {
		t.Error("Expected vertical gradient")
	}
}

func TestRender_WriteErrorAbortsRender(t *testing.T) {
	camera, err := renderer.NewCamera(renderer.DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	rt, err := renderer.NewRaytracer(geometry.NewShapeList(), camera, renderer.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 1}, core.NewConstantSampler(0.5), nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	pw, err := NewPPMWriter(&failingWriter{limit: 1000}, camera.ImageWidth(), camera.ImageHeight())
	if err != nil {
		t.Fatalf("Failed to create PPM writer: %v", err)
	}
	_, stats, err := rt.RenderTo(pw)
	if err == nil {
		// Small writes may sit in the buffer until Close
		err = pw.Close()
	}
	if err == nil {
		t.Fatal("Expected write error")
	}
	if stats.TotalPixels > camera.ImageWidth()*camera.ImageHeight() {
		t.Errorf("Unexpected pixel count %d", stats.TotalPixels)
	}
}
