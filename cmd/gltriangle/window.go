package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend"
	_ "github.com/gogpu/glkit/backend/opengl"
)

// GL contexts belong to the OS thread that made them current.
func init() {
	runtime.LockOSThread()
}

func runWindow(cfg config, scene *Scene, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	title := scene.Title
	if title == "" {
		title = "gltriangle"
	}
	win, err := glfw.CreateWindow(cfg.width, cfg.height, title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	drv, err := backend.Get(backend.BackendOpenGL)
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

	bg := scene.Clear
	for frame := 0; !win.ShouldClose(); frame++ {
		if cfg.frames > 0 && frame >= cfg.frames {
			break
		}
		glfw.PollEvents()
		pollReload(r, changed, logger)

		w, h := win.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
		r.draw()
		win.SwapBuffers()
		dev.Collect()
	}
	return nil
}
