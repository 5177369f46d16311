// Package capture encodes composed frames to WebP on a worker pool, so an
// offline run can keep ticking while encoding catches up.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds the shared resources for a capture run.
type Config struct {
	OutputDir string
	Workers   int
	// Progress enables the periodic frames/sec report on stdout.
	Progress bool
}

// Result holds the outcome of encoding one frame.
type Result struct {
	Index   int
	Success bool
	Error   string
}

type job struct {
	img  *image.NRGBA
	meta FrameMeta
}

// Recorder clones frames off the session goroutine and encodes them on
// workers. Capture is called from one goroutine; Finish drains the pool and
// writes the manifest.
type Recorder struct {
	cfg  Config
	jobs chan job
	wg   sync.WaitGroup
	done chan struct{}

	submitted atomic.Int64
	encoded   atomic.Int64

	mu      sync.Mutex
	metas   []FrameMeta
	results []Result
}

// NewRecorder creates the output directory and starts the worker pool.
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("capture: create %s: %w", cfg.OutputDir, err)
	}

	r := &Recorder{
		cfg:  cfg,
		jobs: make(chan job, cfg.Workers*2),
		done: make(chan struct{}),
	}

	for w := 0; w < cfg.Workers; w++ {
		r.wg.Add(1)
		go r.worker()
	}

	// Progress reporter
	go func() {
		start := time.Now()
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				p := r.encoded.Load()
				if p > 0 && cfg.Progress {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, r.submitted.Load(), rate)
				}
			}
		}
	}()

	return r, nil
}

// Capture snapshots the frame and queues it for encoding. The session may
// reuse the frame's pixels immediately after Capture returns.
func (r *Recorder) Capture(frame *image.NRGBA, meta FrameMeta) {
	meta.Image = fmt.Sprintf("frame_%04d.webp", meta.Index)

	snap := image.NewNRGBA(frame.Rect)
	copy(snap.Pix, frame.Pix)

	r.mu.Lock()
	r.metas = append(r.metas, meta)
	r.mu.Unlock()

	r.submitted.Add(1)
	r.jobs <- job{img: snap, meta: meta}
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for j := range r.jobs {
		res := encodeFrame(r.cfg.OutputDir, j)
		r.mu.Lock()
		r.results = append(r.results, res)
		r.mu.Unlock()
		r.encoded.Add(1)
	}
}

func encodeFrame(dir string, j job) Result {
	outPath := filepath.Join(dir, j.meta.Image)
	f, err := os.Create(outPath)
	if err != nil {
		return Result{Index: j.meta.Index, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, j.img, nil); err != nil {
		return Result{Index: j.meta.Index, Error: fmt.Sprintf("WebP encode: %v", err)}
	}
	return Result{Index: j.meta.Index, Success: true}
}

// Finish drains the pool, writes manifest.json, and returns per-frame
// results ordered by index.
func (r *Recorder) Finish() ([]Result, error) {
	close(r.jobs)
	r.wg.Wait()
	close(r.done)

	sort.Slice(r.results, func(i, k int) bool { return r.results[i].Index < r.results[k].Index })

	err := WriteManifest(filepath.Join(r.cfg.OutputDir, "manifest.json"), r.metas)
	return r.results, err
}
