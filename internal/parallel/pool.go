package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of tasks on a fixed set of goroutines.
//
// Each worker owns a queue. A batch is dealt round-robin across the
// queues, and a worker whose queue runs dry takes tasks from the others.
// A tile inside the set can cost a thousand times more than one outside
// it, so without stealing the slowest queue would set the frame time.
//
// WorkerPool is safe for concurrent use; several batches may be in flight
// at once.
type WorkerPool struct {
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool of the given number of workers, or
// GOMAXPROCS workers if n is not positive.
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	depth := max(4*n, 8)

	p := &WorkerPool{
		queues: make([]chan func(), n),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(n)
	for i := range n {
		go p.work(i)
	}
	return p
}

func (p *WorkerPool) work(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case task := <-own:
			task()
			continue
		case <-p.done:
			p.drain(own)
			return
		default:
		}

		if task := p.steal(id); task != nil {
			task()
			continue
		}

		select {
		case task := <-own:
			task()
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

// drain runs whatever is left in q after shutdown so no batch waits forever.
func (p *WorkerPool) drain(q chan func()) {
	for {
		select {
		case task := <-q:
			task()
		default:
			return
		}
	}
}

// steal takes one task from any other worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	n := len(p.queues)
	for k := 1; k < n; k++ {
		select {
		case task := <-p.queues[(id+k)%n]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task and returns when all have finished.
// It does nothing on a closed pool.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		wrapped := func() {
			defer wg.Done()
			task()
		}
		select {
		case p.queues[i%len(p.queues)] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
}

// ForEach runs fn(i) for every i in [0, n) across the workers and waits
// for all calls to return. On a closed pool the calls run on the calling
// goroutine.
func (p *WorkerPool) ForEach(n int, fn func(i int)) {
	if n <= 0 || fn == nil {
		return
	}
	if !p.running.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	tasks := make([]func(), n)
	for i := range tasks {
		tasks[i] = func() { fn(i) }
	}
	p.ExecuteAll(tasks)
}

// Close stops the workers after the queued tasks have run.
// Further calls are no-ops.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int {
	return len(p.queues)
}

var (
	sharedMu    sync.Mutex
	sharedPools = map[int]*WorkerPool{}
)

// Shared returns the process-wide pool with the given number of workers,
// creating it on first use. A non-positive count means GOMAXPROCS.
// Shared pools live for the life of the process and must not be closed.
func Shared(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if p, ok := sharedPools[workers]; ok {
		return p
	}
	p := NewWorkerPool(workers)
	sharedPools[workers] = p
	return p
}
