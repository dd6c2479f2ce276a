package gldevice

import (
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/window"
	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/ocean"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// openWindow creates a hidden window, which also loads the GL entry points.
// Machines without a display skip the test.
func openWindow(t *testing.T) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	w, err := window.New(window.Config{Title: "gldevice test", Width: 64, Height: 64, Hidden: true})
	if err != nil {
		t.Skipf("no GL context available: %v", err)
	}
	t.Cleanup(w.Close)
}

// Presenter and device must both work straight after window.New, whichever
// is created first.
func TestPresenterAndDeviceAfterWindow(t *testing.T) {
	openWindow(t)

	p, err := NewPresenter()
	if err != nil {
		t.Fatalf("NewPresenter: %v", err)
	}
	defer p.Destroy()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	if err := p.Present(img, 64, 64); err != nil {
		t.Fatalf("Present: %v", err)
	}
	px := p.ReadPixels(64, 64)
	if px[0] != 255 || px[1] != 0 {
		t.Errorf("presented pixel = %v, want red", px[:4])
	}

	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Destroy()
}

func TestNormalsMatchCPU(t *testing.T) {
	openWindow(t)

	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Destroy()

	const n = 8
	sampler := gpu.Sampler{Wrap: gpu.WrapRepeat, Filter: gpu.FilterNearest}
	disp, _ := gpu.NewTexture("displacement", n, sampler)
	want, _ := gpu.NewTexture("normals cpu", n, sampler)
	got, _ := gpu.NewTexture("normals gl", n, sampler)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			disp.Store(x, y, math.Vec4{0.1 * float32(x), float32((x*y)%5) * 0.3, -0.2 * float32(y), 0})
		}
	}

	if err := ocean.EstimateNormals(gpu.NewCPUDevice(1), disp, want, 16); err != nil {
		t.Fatal(err)
	}
	if err := ocean.EstimateNormals(d, disp, got, 16); err != nil {
		t.Fatal(err)
	}
	if err := d.Sync(got); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b := got.Fetch(x, y), want.Fetch(x, y)
			for c := 0; c < 4; c++ {
				if diff := a[c] - b[c]; diff > 1e-4 || diff < -1e-4 {
					t.Fatalf("texel (%d, %d) = %v, cpu %v", x, y, a, b)
				}
			}
		}
	}
}
