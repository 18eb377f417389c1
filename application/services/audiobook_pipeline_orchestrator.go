package services

import (
	"audiobook-generation-api/application/ports/inbound"
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/channel_utils"
	"audiobook-generation-api/domain"
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Progress allocation across the pipeline steps. Synthesis fills the band
// between progressVoiceResolved and progressSynthesisEnd proportionally to
// segments completed.
const (
	progressStarted         = 5
	progressDocumentFetched = 10
	progressTextExtracted   = 25
	progressVoiceResolved   = 35
	progressSynthesisEnd    = 85
	progressConcatenated    = 90
)

// statusWriteTimeout bounds each recorder write on its own, so the terminal
// failed write still lands after the job deadline has expired.
const statusWriteTimeout = 10 * time.Second

type audiobookPipelineOrchestrator struct {
	logger          outbound.LoggerPort
	workerPool      outbound.TaskDispatcher
	recorder        outbound.JobRecorderPort
	notifier        outbound.StatusNotifierPort
	blobStore       outbound.BlobStorePort
	textExtractor   outbound.TextExtractorPort
	voiceResolver   outbound.VoiceResolverPort
	chunker         inbound.TextChunkerPort
	synthesizer     inbound.SegmentSynthesizerPort
	maxSegmentChars int
	parallelism     int
	jobTimeout      time.Duration
}

func NewAudiobookPipelineOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	recorder outbound.JobRecorderPort, notifier outbound.StatusNotifierPort, blobStore outbound.BlobStorePort,
	textExtractor outbound.TextExtractorPort, voiceResolver outbound.VoiceResolverPort,
	chunker inbound.TextChunkerPort, synthesizer inbound.SegmentSynthesizerPort,
	maxSegmentChars int, parallelism int, jobTimeout time.Duration) inbound.AudiobookPipelinePort {
	if parallelism < 1 {
		parallelism = 1
	}
	return &audiobookPipelineOrchestrator{
		logger:          logger,
		workerPool:      workerPool,
		recorder:        recorder,
		notifier:        notifier,
		blobStore:       blobStore,
		textExtractor:   textExtractor,
		voiceResolver:   voiceResolver,
		chunker:         chunker,
		synthesizer:     synthesizer,
		maxSegmentChars: maxSegmentChars,
		parallelism:     parallelism,
		jobTimeout:      jobTimeout,
	}
}

// Run drives the job to a terminal state. The job record is the only channel
// reporting the outcome: a fatal error becomes a single failed write with a
// human-readable message, success a single ready write carrying the output
// location and progress 100.
func (o *audiobookPipelineOrchestrator) Run(ctx context.Context, job domain.Job) {
	runCtx, cancel := context.WithTimeout(ctx, o.jobTimeout)
	defer cancel()

	run := &pipelineRun{
		orchestrator: o,
		job:          job,
		record: domain.JobRecord{
			ID:         job.ID,
			Title:      job.Title,
			VoiceLabel: job.VoiceLabel,
			Status:     domain.JobQueued,
		},
	}

	location, err := run.execute(runCtx)
	if err != nil {
		o.logger.ErrorWithFields(err, "Audiobook job failed", map[string]interface{}{
			"job_id": job.ID,
		})
		run.report(domain.Failed(err.Error()))
		return
	}

	run.report(domain.Ready(location))
	o.logger.InfoWithFields("Audiobook job ready", map[string]interface{}{
		"job_id": job.ID,
		"output": location,
	})
}

// pipelineRun carries the per-job state of one Run invocation.
type pipelineRun struct {
	orchestrator *audiobookPipelineOrchestrator
	job          domain.Job
	recordMu     sync.Mutex
	record       domain.JobRecord
	completed    int64
}

func (r *pipelineRun) execute(ctx context.Context) (string, error) {
	o := r.orchestrator

	r.progress(progressStarted)

	documentBytes, err := o.blobStore.Get(ctx, r.job.DocumentPath)
	if err != nil {
		return "", fmt.Errorf("%w: could not fetch source document %q: %v", domain.ErrInputUnavailable, r.job.DocumentPath, err)
	}
	r.progress(progressDocumentFetched)

	text, err := o.textExtractor.Extract(documentBytes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionEmpty, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: the source may be a scanned image", domain.ErrExtractionEmpty)
	}
	r.progress(progressTextExtracted)

	voiceSampleURL, err := o.voiceResolver.Resolve(ctx, r.job.ID, r.job.Voice)
	if err != nil {
		return "", fmt.Errorf("could not resolve voice reference: %w", err)
	}
	r.progress(progressVoiceResolved)

	segments := r.chunk(text)
	results, err := r.synthesizeAll(ctx, segments, voiceSampleURL)
	if err != nil {
		return "", err
	}

	audiobook := concatenate(results)
	r.progress(progressConcatenated)

	location, err := o.blobStore.Put(ctx, outputPath(r.job.ID), audiobook, "audio/wav")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}

	return location, nil
}

func (r *pipelineRun) chunk(text string) []domain.TextSegment {
	pieces := r.orchestrator.chunker.Split(text, r.orchestrator.maxSegmentChars)

	segments := make([]domain.TextSegment, len(pieces))
	for i, piece := range pieces {
		segments[i] = domain.TextSegment{Index: i, Text: piece}
	}
	return segments
}

// synthesizeAll produces one audio buffer per segment, keyed by segment
// index. Regardless of the execution mode, the returned slice holds indices
// 0..N-1 complete or an error; concatenation never sees a gap.
func (r *pipelineRun) synthesizeAll(ctx context.Context, segments []domain.TextSegment, voiceSampleURL string) ([][]byte, error) {
	if r.orchestrator.parallelism > 1 {
		return r.synthesizeParallel(ctx, segments, voiceSampleURL)
	}
	return r.synthesizeSequential(ctx, segments, voiceSampleURL)
}

// synthesizeSequential is an ordering-preserving fold over the segment index:
// segment i+1 is not started until segment i's bytes are collected.
func (r *pipelineRun) synthesizeSequential(ctx context.Context, segments []domain.TextSegment, voiceSampleURL string) ([][]byte, error) {
	results := make([][]byte, len(segments))

	for _, segment := range segments {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("job aborted before segment %d: %w", segment.Index, err)
		}

		audio, err := r.orchestrator.synthesizer.Synthesize(ctx, segment, voiceSampleURL)
		if err != nil {
			return nil, err
		}
		results[audio.Index] = audio.Content
		r.segmentDone(len(segments))
	}

	return results, nil
}

// jobTaskDispatcher runs intra-job tasks. A job already occupies a pool
// worker while it spawns these, so they must never wait on pool capacity;
// when the pool rejects a task it runs on its own goroutine instead.
type jobTaskDispatcher struct {
	pool outbound.TaskDispatcher
}

func (d jobTaskDispatcher) Submit(task func()) error {
	if err := d.pool.Submit(task); err != nil {
		go task()
	}
	return nil
}

// synthesizeParallel runs up to parallelism backend calls at once, writing
// each result into its index slot and only handing the slice over once all
// indices are present. First error cancels the remaining work.
func (r *pipelineRun) synthesizeParallel(ctx context.Context, segments []domain.TextSegment, voiceSampleURL string) ([][]byte, error) {
	o := r.orchestrator
	dispatcher := jobTaskDispatcher{pool: o.workerPool}

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]byte, len(segments))

	segmentCh := make(chan domain.TextSegment)
	err := dispatcher.Submit(func() {
		defer close(segmentCh)
		for _, segment := range segments {
			select {
			case <-newCtx.Done():
				return
			case segmentCh <- segment:
			}
		}
	})
	if err != nil {
		return nil, err
	}

	workerErrChs := make([]<-chan error, 0, o.parallelism)
	for w := 0; w < o.parallelism; w++ {
		errCh := make(chan error, 1)
		workerErrChs = append(workerErrChs, errCh)

		err := dispatcher.Submit(func() {
			defer close(errCh)
			for segment := range segmentCh {
				select {
				case <-newCtx.Done():
					return
				default:
				}

				audio, synthErr := o.synthesizer.Synthesize(newCtx, segment, voiceSampleURL)
				if synthErr != nil {
					errCh <- synthErr
					cancel()
					return
				}
				// Distinct indices, so no lock is needed on the slice.
				results[audio.Index] = audio.Content
				r.segmentDone(len(segments))
			}
		})
		if err != nil {
			cancel()
			return nil, err
		}
	}

	mergedErrCh, err := channel_utils.MergeChannels(dispatcher, workerErrChs...)
	if err != nil {
		cancel()
		return nil, err
	}
	for workerErr := range mergedErrCh {
		if workerErr != nil {
			return nil, workerErr
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("job aborted during synthesis: %w", err)
	}
	for i, result := range results {
		if len(result) == 0 {
			return nil, fmt.Errorf("%w: segment %d produced no audio", domain.ErrBackendInvocation, i)
		}
	}

	return results, nil
}

func (r *pipelineRun) segmentDone(total int) {
	done := int(atomic.AddInt64(&r.completed, 1))
	r.progress(synthesisProgress(done, total))
}

func (r *pipelineRun) progress(value int) {
	r.report(domain.Processing(value))
}

// report persists the update and pushes it to realtime subscribers. Recorder
// writes are best-effort: a failed write is logged and the job continues.
// The mutex is held across the external writes so the sequence observers see
// matches the apply order; concurrent segment completions may report out of
// order, so a non-terminal progress value at or below the recorded one is
// stale and dropped.
func (r *pipelineRun) report(update domain.JobUpdate) {
	o := r.orchestrator

	r.recordMu.Lock()
	defer r.recordMu.Unlock()

	if update.Progress != nil && update.Status != nil && !update.Status.Terminal() &&
		*update.Progress <= r.record.Progress {
		return
	}

	r.record.Apply(update)
	record := r.record

	writeCtx, cancel := context.WithTimeout(context.Background(), statusWriteTimeout)
	defer cancel()

	if err := o.recorder.Update(writeCtx, r.job.ID, update); err != nil {
		o.logger.WarnWithFields(err, "Failed to persist job status update", map[string]interface{}{
			"job_id":   r.job.ID,
			"status":   record.Status,
			"progress": record.Progress,
		})
	}

	o.notifier.Notify(r.job.ID, record)
}

func synthesisProgress(done int, total int) int {
	if total < 1 {
		return progressSynthesisEnd
	}
	return progressVoiceResolved + (progressSynthesisEnd-progressVoiceResolved)*done/total
}

// concatenate joins the per-segment buffers in strict index order. Byte-level
// joining assumes the backend emits a raw-concatenable audio format; no
// re-muxing is performed.
func concatenate(results [][]byte) []byte {
	var buf bytes.Buffer
	for _, result := range results {
		buf.Write(result)
	}
	return buf.Bytes()
}

func outputPath(jobID string) string {
	return fmt.Sprintf("audiobooks/%s/audiobook.wav", jobID)
}
