package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// ChunkTask represents a chunk rendering task for the worker pool
type ChunkTask struct {
	Chunk  WorkChunk
	Random *rand.Rand // Private to whichever worker picks the task up
}

// ChunkResult contains the result from rendering a chunk
type ChunkResult struct {
	Chunk    WorkChunk
	Pixels   []byte // RGBA bytes for Chunk.From..Chunk.To
	WorkerID int
	Error    error
}

// WorkerPool manages parallel chunk rendering with a fixed number of workers.
// Results arrive in completion order, not launch order.
type WorkerPool struct {
	taskQueue   chan ChunkTask
	resultQueue chan ChunkResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual chunk rendering tasks
type Worker struct {
	ID          int
	renderer    *TileRenderer
	taskQueue   chan ChunkTask
	resultQueue chan ChunkResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds how many tasks and results can be buffered without blocking.
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	queueSize = max(queueSize, numWorkers)

	wp := &WorkerPool{
		taskQueue:   make(chan ChunkTask, queueSize),
		resultQueue: make(chan ChunkResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    tileRenderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers. Tasks still queued are drained;
// when ctx is cancelled they complete immediately with its error.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a chunk task to the worker pool
func (wp *WorkerPool) SubmitTask(task ChunkTask) {
	wp.taskQueue <- task
}

// Results exposes completed chunks as they finish
func (wp *WorkerPool) Results() <-chan ChunkResult {
	return wp.resultQueue
}

// GetResult retrieves a completed chunk result
func (wp *WorkerPool) GetResult() (ChunkResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.render(ctx, task)
	}
}

// render renders one chunk, turning a panic into an error on the result
func (w *Worker) render(ctx context.Context, task ChunkTask) (result ChunkResult) {
	result = ChunkResult{Chunk: task.Chunk, WorkerID: w.ID}

	defer func() {
		if r := recover(); r != nil {
			result.Pixels = nil
			result.Error = fmt.Errorf("worker %d panicked on chunk %d [%d,%d): %v",
				w.ID, task.Chunk.Index, task.Chunk.From, task.Chunk.To, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	pixels, err := w.renderer.RenderChunk(ctx, task.Chunk, task.Random)
	if err != nil {
		result.Error = fmt.Errorf("chunk %d [%d,%d): %w", task.Chunk.Index, task.Chunk.From, task.Chunk.To, err)
		return result
	}
	result.Pixels = pixels
	return result
}
