// Package bench runs scenarios headlessly across seeds on a pool of workers
// and collects telemetry samples.
package bench

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"sandsim/internal/config"
	"sandsim/internal/scenario"
	"sandsim/internal/telemetry"
)

// Job is one scenario run with a fixed seed.
type Job struct {
	Scenario string
	Seed     int64
}

// Result carries the samples of one job.
type Result struct {
	Job     Job
	Samples []telemetry.Sample
	Err     error
}

// Jobs expands the configured scenarios over seeds consecutive seeds starting
// at the world seed.
func Jobs(cfg *config.Config) []Job {
	var jobs []Job
	for _, name := range cfg.Bench.Scenarios {
		for i := 0; i < cfg.Bench.Seeds; i++ {
			jobs = append(jobs, Job{Scenario: name, Seed: cfg.World.Seed + int64(i)})
		}
	}
	return jobs
}

// Run executes jobs on cfg.Bench.Workers goroutines, one per CPU when zero.
// Results are returned in job order. A cancelled ctx stops the remaining
// jobs, which report ctx.Err().
func Run(ctx context.Context, cfg *config.Config, jobs []Job) []Result {
	workers := cfg.Bench.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(jobs), 1))

	type indexed struct {
		i   int
		res Result
	}
	queue := make(chan int)
	results := make(chan indexed)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				results <- indexed{i: idx, res: runJob(ctx, cfg, jobs[idx])}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := range jobs {
			queue <- i
		}
		close(queue)
	}()

	out := make([]Result, len(jobs))
	for r := range results {
		out[r.i] = r.res
	}
	return out
}

func runJob(ctx context.Context, cfg *config.Config, job Job) Result {
	res := Result{Job: job}
	opts := cfg.Sand()
	opts.Seed = job.Seed
	world, err := scenario.New(opts, job.Scenario)
	if err != nil {
		res.Err = fmt.Errorf("scenario %q: %w", job.Scenario, err)
		return res
	}
	every := max(cfg.Bench.SampleEvery, 1)
	for tick := 1; tick <= cfg.Bench.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		start := time.Now()
		world.Step()
		elapsed := time.Since(start)
		if tick%every == 0 || tick == cfg.Bench.Ticks {
			res.Samples = append(res.Samples, telemetry.Capture(world, job.Scenario, job.Seed, elapsed))
		}
	}
	return res
}

// ByScenario groups the samples of successful results by scenario name.
func ByScenario(results []Result) map[string][]telemetry.Sample {
	out := make(map[string][]telemetry.Sample)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		out[r.Job.Scenario] = append(out[r.Job.Scenario], r.Samples...)
	}
	return out
}
