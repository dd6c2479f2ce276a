package gpu

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CPUDevice rasterizes passes on the host. Rows of the target are split into
// bands that run on a bounded number of goroutines.
type CPUDevice struct {
	workers int
}

// NewCPUDevice creates a CPU device. workers <= 0 uses GOMAXPROCS.
func NewCPUDevice(workers int) *CPUDevice {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &CPUDevice{workers: workers}
}

// Name implements Device.
func (d *CPUDevice) Name() string { return "cpu" }

// Workers returns the row worker limit.
func (d *CPUDevice) Workers() int { return d.workers }

// Concurrent reports that passes may be drawn from several goroutines.
func (d *CPUDevice) Concurrent() bool { return true }

// Draw implements Device.
func (d *CPUDevice) Draw(p Pass, dst *Texture) error {
	if err := CheckPass(p, dst); err != nil {
		return err
	}

	n := dst.Size
	band := (n + d.workers - 1) / d.workers
	if band < 1 {
		band = 1
	}

	var g errgroup.Group
	g.SetLimit(d.workers)
	for y0 := 0; y0 < n; y0 += band {
		y1 := min(y0+band, n)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				row := y * n * 4
				for x := 0; x < n; x++ {
					v := p.Shade(x, y)
					o := row + x*4
					dst.Pix[o+0] = v[0]
					dst.Pix[o+1] = v[1]
					dst.Pix[o+2] = v[2]
					dst.Pix[o+3] = v[3]
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	dst.hostDirty = true
	return nil
}

// Sync implements Device. Host memory is the only copy.
func (d *CPUDevice) Sync(t *Texture) error {
	t.stale = false
	return nil
}

// Release implements Device.
func (d *CPUDevice) Release(t *Texture) {}
