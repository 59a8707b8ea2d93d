// Package platform opens the desktop window and turns its mouse state into
// pointer samples.
package platform

import (
	"fmt"
	"runtime"

	"github.com/gekko3d/reshaper"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window acting as a reshaper.PointerSource.
type Window struct {
	win    *glfw.Window
	title  string
	scroll float64
	held   bool
}

// Open initializes GLFW and creates a window. Call it from the main
// goroutine; the OS thread stays locked until Close.
func Open(width, height int, title string) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{win: win, title: title}
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.scroll += yoff
	})
	return w, nil
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SetTitle(title string) {
	if title != w.title {
		w.title = title
		w.win.SetTitle(title)
	}
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}

// Sample polls events and reports the left button with the cursor flipped
// to a bottom-left origin.
func (w *Window) Sample() reshaper.PointerSample {
	glfw.PollEvents()

	width, height := w.win.GetSize()
	mx, my := w.win.GetCursorPos()
	pressed := w.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press

	s := reshaper.PointerSample{
		Down:      pressed && !w.held,
		Held:      pressed,
		Up:        !pressed && w.held,
		X:         float32(mx),
		Y:         float32(float64(height) - my),
		Scroll:    float32(w.scroll),
		ViewportW: width,
		ViewportH: height,
	}
	w.held = pressed
	w.scroll = 0
	return s
}
