package label

import (
	"image"
	"sync"
)

// BitmapPool recycles label bitmaps. Get returns nil when no bitmap of the
// requested size is available.
type BitmapPool interface {
	Get(width, height int) *image.RGBA
	Put(img *image.RGBA)
}

// maxPoolBuckets bounds the number of sizes a SizedPool tracks. The least
// recently used size is dropped first.
const maxPoolBuckets = 8

// SizedPool keeps one sync.Pool per bitmap size, for at most maxPoolBuckets
// sizes.
type SizedPool struct {
	mutex sync.Mutex
	pools map[image.Point]*sync.Pool
	order []image.Point
}

func NewSizedPool() *SizedPool {
	return &SizedPool{
		pools: make(map[image.Point]*sync.Pool),
	}
}

func (p *SizedPool) bucket(size image.Point) *sync.Pool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	pool, exists := p.pools[size]
	if exists {
		p.touch(size)
		return pool
	}
	if len(p.order) >= maxPoolBuckets {
		delete(p.pools, p.order[0])
		p.order = p.order[1:]
	}
	pool = &sync.Pool{}
	p.pools[size] = pool
	p.order = append(p.order, size)
	return pool
}

// touch moves size to the most recently used end of order.
func (p *SizedPool) touch(size image.Point) {
	for i, s := range p.order {
		if s == size {
			copy(p.order[i:], p.order[i+1:])
			p.order[len(p.order)-1] = size
			return
		}
	}
}

func (p *SizedPool) Get(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	v := p.bucket(image.Pt(width, height)).Get()
	if v == nil {
		return nil
	}
	return v.(*image.RGBA)
}

func (p *SizedPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	p.bucket(size).Put(img)
}
