package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"imagebatch/internal/models"
	"imagebatch/internal/services/packager"
	"imagebatch/internal/services/processor"
)

// Options tune one Orchestrator.
type Options struct {
	// Workers bounds transform parallelism. 1 (the default) processes
	// items strictly sequentially, which also bounds peak memory to
	// roughly one decoded image at a time.
	Workers int
	// OnProgress, when set, receives completion percentages. Updates are
	// monotonically non-decreasing, reach exactly 100 on the last item
	// and reset to 0 once the batch has been delivered.
	OnProgress func(percent float64)
}

// Orchestrator drives a Transformer over an ordered set of sources, collects
// one ItemResult per source in submission order and hands successful outputs
// to an OutputSink. Per-item failures never abort the batch; sink failures
// are fatal and surface as the run error.
type Orchestrator struct {
	transformer processor.Transformer
	sink        packager.OutputSink
	logger      *zap.Logger
	workers     int
	onProgress  func(float64)
}

func NewOrchestrator(tr processor.Transformer, sink packager.OutputSink, logger *zap.Logger, opts Options) *Orchestrator {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		transformer: tr,
		sink:        sink,
		logger:      logger,
		workers:     workers,
		onProgress:  opts.OnProgress,
	}
}

func (o *Orchestrator) Run(ctx context.Context, sources []*models.SourceImage, spec models.TransformSpec) (*models.BatchResult, error) {
	result := &models.BatchResult{
		BatchID:    uuid.New().String(),
		TotalFiles: len(sources),
		StartedAt:  time.Now(),
		Results:    make([]models.ItemResult, len(sources)),
	}

	// Callers are expected to reject empty uploads before getting here; an
	// empty batch is still a defined no-op that touches no sink.
	if len(sources) == 0 {
		return result, nil
	}

	defer o.emitProgress(0)

	var err error
	if o.workers > 1 {
		err = o.runPooled(ctx, sources, spec, result)
	} else {
		err = o.runSequential(ctx, sources, spec, result)
	}
	if err != nil {
		return nil, err
	}

	if err := o.sink.Close(); err != nil {
		return nil, err
	}
	return result, nil
}

// runSequential is the reference behavior: one item fully completes,
// including its sink handoff, before the next one starts.
func (o *Orchestrator) runSequential(ctx context.Context, sources []*models.SourceImage, spec models.TransformSpec, result *models.BatchResult) error {
	for i, src := range sources {
		item, data := o.processOne(ctx, src, spec)
		result.Results[i] = item
		if item.Succeeded() {
			result.SuccessfulCount++
			if err := o.sink.Add(item.OutputName, data); err != nil {
				return err
			}
		} else {
			result.FailedCount++
		}
		o.emitProgress(float64(i+1) / float64(len(sources)) * 100)
	}
	return nil
}

// runPooled transforms items on a bounded worker pool. Results land in an
// index-addressed slice and the sink handoff happens afterwards in
// submission order, so ordering guarantees match the sequential path.
func (o *Orchestrator) runPooled(ctx context.Context, sources []*models.SourceImage, spec models.TransformSpec, result *models.BatchResult) error {
	outputs := make([][]byte, len(sources))
	jobs := make(chan int, len(sources))

	workers := o.workers
	if len(sources) < workers {
		workers = len(sources)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				item, data := o.processOne(ctx, sources[i], spec)
				result.Results[i] = item
				outputs[i] = data
				// emitted under the lock so observers see a
				// non-decreasing sequence
				mu.Lock()
				completed++
				o.emitProgress(float64(completed) / float64(len(sources)) * 100)
				mu.Unlock()
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := range result.Results {
		if !result.Results[i].Succeeded() {
			result.FailedCount++
			continue
		}
		result.SuccessfulCount++
		if err := o.sink.Add(result.Results[i].OutputName, outputs[i]); err != nil {
			return err
		}
	}
	return nil
}

// processOne converts any transform error into a Failure ItemResult carrying
// the error's message text.
func (o *Orchestrator) processOne(ctx context.Context, src *models.SourceImage, spec models.TransformSpec) (models.ItemResult, []byte) {
	out, err := o.transformer.Transform(ctx, src, spec)
	if err != nil {
		o.logger.Warn("item failed",
			zap.String("file", src.Name),
			zap.Error(err),
		)
		return models.ItemResult{OriginalName: src.Name, Error: err.Error()}, nil
	}

	item := models.ItemResult{
		OriginalName:       src.Name,
		OutputName:         OutputName(src.Name, spec.TargetFormat),
		OriginalSize:       out.OriginalSize,
		ConvertedSize:      out.ConvertedSize,
		CompressionRatio:   compressionRatio(out.OriginalSize, out.ConvertedSize),
		OriginalDimensions: out.OriginalDimensions,
		NewDimensions:      out.NewDimensions,
	}
	return item, out.Data
}

func (o *Orchestrator) emitProgress(percent float64) {
	if o.onProgress != nil {
		o.onProgress(percent)
	}
}

func compressionRatio(original, converted int64) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-converted) / float64(original) * 100
}
