// Package worker provides a parallel render job worker pool.
package worker

import (
	"context"
	"sync"
	"time"
)

// Runner executes a single render job and returns the output path.
type Runner interface {
	Run(ctx context.Context, job Job) (path string, err error)
}

// Job describes one render: a label for the output, the target resolution,
// and an optional global seed override (0 keeps the project's seed).
type Job struct {
	Label  string
	Width  int
	Height int
	Seed   int64
	Force  bool
}

// Result represents the outcome of a render job.
type Result struct {
	Job     Job
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each job completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Runner     Runner
	OnProgress ProgressFunc
}

// Pool runs render jobs in parallel.
type Pool struct {
	workers    int
	runner     Runner
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		runner:     cfg.Runner,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all jobs and returns their results. Jobs are processed in
// parallel by the configured number of workers; the call blocks until every
// job has completed or the context is cancelled.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	if len(jobs) == 0 {
		return nil
	}

	jobCh := make(chan Job, len(jobs))
	resultCh := make(chan Result, len(jobs))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, jobCh, resultCh)
		}()
	}

	go func() {
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
			}
		}
		close(jobCh)
	}()

	results := make([]Result, 0, len(jobs))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(jobs), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, jobs <-chan Job, results chan<- Result) {
	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- Result{
				Job: job,
				Err: ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		path, err := p.runner.Run(ctx, job)
		elapsed := time.Since(start)

		results <- Result{
			Job:     job,
			Path:    path,
			Err:     err,
			Elapsed: elapsed,
		}
	}
}
