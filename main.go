package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// scenesDir is scanned for JSON scene files by -list
const scenesDir = "scenes"

// createOutputFile opens the image file; tests replace it
var createOutputFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

type options struct {
	scene   string
	config  string
	output  string
	format  string
	width   int
	samples int
	depth   int
	seed    int64
	delay   time.Duration
	quiet   bool
	list    bool
	help    bool

	set map[string]bool // flags given explicitly on the command line
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name (see -list)")
	fs.StringVar(&opts.config, "config", "", "Path to a JSON scene file; overrides -scene")
	fs.StringVar(&opts.output, "output", "", "Output file, or '-' for stdout (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.format, "format", "", "Image format: 'ppm' or 'png' (default from -output extension, else ppm)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (default from scene)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (default from scene)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth (default from scene)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed (default: time based)")
	fs.DurationVar(&opts.delay, "delay", 0, "Pause after each scanline, e.g. 10ms")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Weekend Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-17s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.ppm unless -output is given")
}

func printSceneList(w io.Writer, dir string) error {
	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		if info.Type == "json" {
			fmt.Fprintf(w, "  -config %s  (%s)\n", info.FilePath, info.DisplayName)
			continue
		}
		fmt.Fprintf(w, "  -scene %-17s %s\n", info.ID, info.Description)
	}
	return nil
}

// createScene loads a JSON scene file when configPath is set and a built-in scene otherwise
func createScene(sceneName, configPath string, sampler core.Sampler, cameraOverrides ...renderer.CameraConfig) (*scene.Scene, error) {
	if configPath != "" {
		return scene.LoadJSON(configPath, cameraOverrides...)
	}
	return scene.Create(sceneName, sampler, cameraOverrides...)
}

// createOutputPath returns output/<scene>/render_<timestamp>.<ext>
func createOutputPath(sceneName string, format output.Format, now time.Time) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", base, fmt.Sprintf("render_%s.%s", timestamp, format))
}

// applyOverrides folds explicitly given flags into the scene's settings
func applyOverrides(opts *options, s *scene.Scene) {
	if opts.set["samples"] {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.set["depth"] {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.set["delay"] {
		s.SamplingConfig.ScanlineDelay = opts.delay
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.help {
		printHelp(stdout, fs)
		return nil
	}
	if opts.list {
		return printSceneList(stdout, scenesDir)
	}

	logger := log.New(stderr, "", 0)
	var progress core.Logger = renderer.NewWriterLogger(stderr)
	if opts.quiet {
		logger.SetOutput(io.Discard)
		progress = renderer.NopLogger{}
	}

	seed := opts.seed
	if !opts.set["seed"] {
		seed = time.Now().UnixNano()
	}
	sampler := core.NewSeededSampler(seed)

	var cameraOverrides renderer.CameraConfig
	if opts.set["width"] {
		if opts.width <= 0 {
			return fmt.Errorf("%w: -width must be positive, got %d", renderer.ErrInvalidConfig, opts.width)
		}
		cameraOverrides.ImageWidth = opts.width
	}

	logger.Println("Starting Weekend Raytracer...")
	selectedScene, err := createScene(opts.scene, opts.config, sampler, cameraOverrides)
	if err != nil {
		return err
	}
	applyOverrides(opts, selectedScene)
	logger.Printf("Using scene %q with %d objects (seed %d)", selectedScene.Name, selectedScene.GetPrimitiveCount(), seed)

	format, err := output.ParseFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	camera, err := selectedScene.NewCamera()
	if err != nil {
		return err
	}
	raytracer, err := renderer.NewRaytracer(selectedScene.World, camera, selectedScene.SamplingConfig, sampler, progress)
	if err != nil {
		return err
	}

	var w io.Writer = stdout
	var file io.WriteCloser
	outPath := opts.output
	if outPath != "-" {
		if outPath == "" {
			outPath = createOutputPath(selectedScene.Name, format, time.Now())
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		file, err = createOutputFile(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		w = file
	}

	logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d",
		camera.ImageWidth(), camera.ImageHeight(), selectedScene.SamplingConfig.SamplesPerPixel, selectedScene.SamplingConfig.MaxDepth)

	stats, err := render(raytracer, camera, w, format)
	if file != nil {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}
	if err != nil {
		return err
	}

	logger.Printf("Render completed in %v (%d samples)", stats.Elapsed, stats.TotalSamples)
	if outPath != "-" {
		logger.Printf("Render saved as %s", outPath)
	}
	return nil
}

// render streams PPM output scanline by scanline; PNG needs the whole frame first
func render(raytracer *renderer.Raytracer, camera *renderer.Camera, w io.Writer, format output.Format) (renderer.RenderStats, error) {
	if format == output.FormatPPM {
		pw, err := output.NewPPMWriter(w, camera.ImageWidth(), camera.ImageHeight())
		if err != nil {
			return renderer.RenderStats{}, err
		}
		_, stats, err := raytracer.RenderTo(pw)
		if err != nil {
			return stats, err
		}
		return stats, pw.Close()
	}

	frame, stats := raytracer.Render()
	return stats, output.Write(w, frame, format)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
