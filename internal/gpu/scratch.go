package gpu

import (
	"fmt"
	"sync"
)

// ScratchPair is the ping/pong target pair one FFT invocation writes through.
type ScratchPair struct {
	Ping *Texture
	Pong *Texture
}

// ScratchPool lends scratch pairs by texture size. Sequential callers keep
// reusing the same pair; concurrent callers each get their own.
type ScratchPool struct {
	mu      sync.Mutex
	free    map[int][]*ScratchPair
	created int
}

// NewScratchPool creates an empty pool.
func NewScratchPool() *ScratchPool {
	return &ScratchPool{free: make(map[int][]*ScratchPair)}
}

// Acquire returns a pair of the given size, allocating one when none is free.
func (p *ScratchPool) Acquire(size int) (*ScratchPair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if list := p.free[size]; len(list) > 0 {
		pair := list[len(list)-1]
		p.free[size] = list[:len(list)-1]
		return pair, nil
	}

	sampler := Sampler{Wrap: WrapClamp, Filter: FilterNearest}
	ping, err := NewTexture(fmt.Sprintf("scratch%d.ping", p.created), size, sampler)
	if err != nil {
		return nil, err
	}
	pong, err := NewTexture(fmt.Sprintf("scratch%d.pong", p.created), size, sampler)
	if err != nil {
		return nil, err
	}
	p.created++
	return &ScratchPair{Ping: ping, Pong: pong}, nil
}

// Release returns a pair to the pool.
func (p *ScratchPool) Release(pair *ScratchPair) {
	if pair == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	size := pair.Ping.Size
	p.free[size] = append(p.free[size], pair)
}

// Created returns how many pairs the pool has allocated.
func (p *ScratchPool) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// Drain releases the device resources of every idle pair.
func (p *ScratchPool) Drain(dev Device) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for size, list := range p.free {
		for _, pair := range list {
			dev.Release(pair.Ping)
			dev.Release(pair.Pong)
		}
		delete(p.free, size)
	}
}
