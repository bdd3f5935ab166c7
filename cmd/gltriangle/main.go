// Command gltriangle draws a scene file through glkit.
//
// With the opengl backend it opens a window with a GL 4.6 core context.
// Any other backend runs headless for a fixed number of frames; the fake
// backend prints its call log afterwards.
//
//	gltriangle                          # window, built-in triangle
//	gltriangle -scene quad.toml -watch  # recompile shaders on save
//	gltriangle -backend fake -frames 2  # headless call trace
//	gltriangle -backend auto            # best backend that starts headless
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend"
	"github.com/gogpu/glkit/backend/fake"
	"github.com/gogpu/glkit/driver"
)

type config struct {
	backend string
	scene   string
	watch   bool
	width   int
	height  int
	frames  int
	verbose bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.backend, "backend", backend.BackendOpenGL, `driver backend: "opengl", "fake" or "auto"`)
	flag.StringVar(&cfg.scene, "scene", "", "scene file (TOML); built-in triangle when empty")
	flag.BoolVar(&cfg.watch, "watch", false, "recompile shaders when the scene's shader files change")
	flag.IntVar(&cfg.width, "width", 800, "window width")
	flag.IntVar(&cfg.height, "height", 600, "window height")
	flag.IntVar(&cfg.frames, "frames", 0, "stop after this many frames (0: until closed; headless runs draw at least one)")
	flag.BoolVar(&cfg.verbose, "v", false, "log driver objects and draw calls")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	glkit.SetLogger(logger)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("gltriangle failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger, out io.Writer) error {
	scene, err := loadScene(cfg.scene)
	if err != nil {
		return err
	}
	if cfg.backend == backend.BackendOpenGL {
		return runWindow(cfg, scene, logger)
	}
	return runHeadless(cfg, scene, logger, out)
}

func openDriver(name string, logger *slog.Logger) (driver.Driver, error) {
	if name != "auto" {
		return backend.Get(name)
	}
	picked, drv, err := backend.Default()
	if err != nil {
		return nil, err
	}
	logger.Info("backend selected", "backend", picked, "available", backend.Available())
	return drv, nil
}

func runHeadless(cfg config, scene *Scene, logger *slog.Logger, out io.Writer) error {
	drv, err := openDriver(cfg.backend, logger)
	if err != nil {
		return err
	}
	dev := glkit.NewDevice(drv, glkit.WithLogger(logger))
	defer dev.Close()

	r, err := newRenderer(dev, scene, logger)
	if err != nil {
		return err
	}
	defer r.release()

	var changed <-chan string
	if cfg.watch {
		w, err := newWatcher(scene.ShaderPaths(), logger)
		if err != nil {
			return err
		}
		defer w.Close()
		changed = w.Changed()
	}

	for range max(cfg.frames, 1) {
		pollReload(r, changed, logger)
		r.draw()
		dev.Collect()
	}

	if f, ok := drv.(*fake.Driver); ok {
		return dumpCalls(out, f)
	}
	return nil
}

// pollReload recompiles the shaders if a watched file changed since the
// last frame.
func pollReload(r *renderer, changed <-chan string, logger *slog.Logger) {
	select {
	case path := <-changed:
		if err := r.reload(); err != nil {
			logger.Error("reload failed, keeping previous program", "file", path, "err", err)
			return
		}
		logger.Info("shaders reloaded", "file", path)
	default:
	}
}

func dumpCalls(out io.Writer, f *fake.Driver) error {
	for i, c := range f.Calls {
		if _, err := fmt.Fprintf(out, "%4d %s\n", i, c); err != nil {
			return err
		}
	}
	if len(f.Errors) > 0 {
		return fmt.Errorf("driver reported %d errors, first: %s", len(f.Errors), f.Errors[0])
	}
	return nil
}
