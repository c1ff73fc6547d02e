package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/gekko3d/pathrt"
	"github.com/gekko3d/pathrt/rt/app"
	"github.com/gekko3d/pathrt/rt/scenes"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw and the surface must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	fs := flag.NewFlagSet("pathrt", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: pathrt [flags] [scene]\n\nscenes: %s\n\nflags:\n", strings.Join(scenes.Names(), ", "))
		fs.PrintDefaults()
	}
	cfg := pathrt.DefaultConfig()
	if err := cfg.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := pathrt.NewDefaultLogger("pathrt", cfg.Debug)
	if err := run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg pathrt.Config, logger pathrt.Logger) error {
	name, ok := scenes.Lookup(cfg.Scene)
	if !ok && cfg.Scene != "" {
		logger.Warnf("unknown scene %q, using %q (available: %s)", cfg.Scene, name, strings.Join(scenes.Names(), ", "))
	}
	scene := scenes.Build(name)
	if err := scene.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", name, err)
	}
	logger.Infof("scene %q: %d spheres, %d meshes", scene.Name, len(scene.Spheres), len(scene.Meshes))

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	application := app.NewApp(window, scene, cfg, logger)
	defer application.Release()
	if err := application.Init(); err != nil {
		return err
	}

	in := application.State.Input
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		application.Resize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		in.OnKey(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		in.OnMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		in.OnCursor(xpos, ypos)
	})
	window.SetCloseCallback(func(w *glfw.Window) {
		application.Close()
	})

	for !window.ShouldClose() && !application.Loop.Closing() {
		glfw.PollEvents()
		application.Frame()
	}
	logger.Infof("presented %d frames", application.State.Presented)
	return nil
}
