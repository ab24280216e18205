package dtree

import (
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

// A buildQueue runs the recursive halves of tree induction on a fixed number
// of Goroutines. The root task is started with Run(); inside a task, Fork()
// evaluates two subtree builds, handing the second to an idle worker when
// one picks it up in time.
type buildQueue[F constraints.Float] struct {
	queue chan *buildTask[F]
}

type buildTask[F constraints.Float] struct {
	claimed int32
	build   func() *Node[F]
	result  chan *Node[F]
}

func newBuildQueue[F constraints.Float](numWorkers int) *buildQueue[F] {
	res := &buildQueue[F]{
		queue: make(chan *buildTask[F], numWorkers*64),
	}
	for i := 0; i < numWorkers; i++ {
		go res.worker()
	}
	return res
}

func (b *buildQueue[F]) Run(fn func() *Node[F]) *Node[F] {
	defer close(b.queue)
	task := &buildTask[F]{build: fn, result: make(chan *Node[F], 1)}
	b.queue <- task
	return <-task.result
}

func (b *buildQueue[F]) Fork(fn1, fn2 func() *Node[F]) (*Node[F], *Node[F]) {
	task := &buildTask[F]{build: fn2, result: make(chan *Node[F], 1)}
	select {
	case b.queue <- task:
	default:
		// The queue is backed up; run locally to bound memory usage.
		task.claimed = 1
		task.result <- task.build()
	}
	result1 := fn1()
	var result2 *Node[F]
	if atomic.SwapInt32(&task.claimed, 1) == 0 {
		// No worker got to the task in time, so claim it back.
		result2 = fn2()
	} else {
		result2 = <-task.result
	}
	return result1, result2
}

func (b *buildQueue[F]) worker() {
	for task := range b.queue {
		if atomic.SwapInt32(&task.claimed, 1) != 0 {
			continue
		}
		task.result <- task.build()
	}
}
