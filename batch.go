package accel

import (
	"context"
	"runtime"
	"sync"

	"github.com/gekko3d/gekko-accel/rt/bvh"
)

// batchChunk is the number of rays one task covers.
const batchChunk = 256

// RayResult is the outcome of one ray of a batch.
type RayResult struct {
	Hit Hit
	OK  bool
}

// rayTask is a contiguous range of a batch.
type rayTask struct {
	begin, end int
}

// rayPool traces ray ranges on a fixed set of goroutines.
type rayPool struct {
	accel     *Accel
	rays      []bvh.Ray
	maxDist   float32
	out       []RayResult
	taskQueue chan rayTask
	wg        sync.WaitGroup
}

func newRayPool(a *Accel, rays []bvh.Ray, maxDist float32, out []RayResult, numWorkers int) *rayPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	p := &rayPool{
		accel:     a,
		rays:      rays,
		maxDist:   maxDist,
		out:       out,
		taskQueue: make(chan rayTask, numWorkers),
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// run writes into disjoint ranges of out, so no locking is needed.
func (p *rayPool) run() {
	defer p.wg.Done()
	for task := range p.taskQueue {
		for i := task.begin; i < task.end; i++ {
			h, ok := p.accel.trace(p.rays[i], p.maxDist, bvh.QueryClosest, nil)
			p.out[i] = RayResult{Hit: h, OK: ok}
		}
	}
}

func (p *rayPool) stop() {
	close(p.taskQueue)
	p.wg.Wait()
}

// TraceBatch finds the closest hit of every ray using the configured number
// of workers. Results are in ray order. If ctx is cancelled the remaining
// rays are not traced and ctx.Err() is returned.
func (a *Accel) TraceBatch(ctx context.Context, rays []bvh.Ray, maxDist float32) ([]RayResult, error) {
	out := make([]RayResult, len(rays))
	if len(rays) == 0 {
		return out, nil
	}
	pool := newRayPool(a, rays, maxDist, out, a.workers)
	var err error
submit:
	for begin := 0; begin < len(rays); begin += batchChunk {
		if err = ctx.Err(); err != nil {
			break
		}
		task := rayTask{begin: begin, end: min(begin+batchChunk, len(rays))}
		select {
		case pool.taskQueue <- task:
		case <-ctx.Done():
			err = ctx.Err()
			break submit
		}
	}
	pool.stop()
	if err != nil {
		return nil, err
	}
	return out, nil
}
