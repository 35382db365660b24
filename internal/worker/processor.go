// Package worker runs the detection pipeline façade against queued
// per-frame tasks, the service-layer counterpart of the teacher's
// vision.Pipeline.ProcessFrame.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"sync"

	"github.com/google/uuid"

	"github.com/your-org/faceline/internal/cascadestore"
	"github.com/your-org/faceline/internal/config"
	"github.com/your-org/faceline/internal/detect"
	"github.com/your-org/faceline/internal/models"
	"github.com/your-org/faceline/internal/observability"
	"github.com/your-org/faceline/internal/pipeline"
	"github.com/your-org/faceline/internal/queue"
	"github.com/your-org/faceline/internal/storage"
)

// Processor handles one DetectJobTask at a time: fetch the frame,
// run the pipeline, deduplicate against earlier frames of the same
// job, persist the normalized crop, and publish the outcome.
type Processor struct {
	db       *storage.PostgresStore
	minio    *storage.MinIOStore
	producer *queue.Producer
	cascades *cascadestore.Registry
	dedupe   config.DedupeConfig

	mu        sync.Mutex
	dedupers  map[uuid.UUID]*pipeline.Deduper
	completed map[uuid.UUID]int
}

func NewProcessor(db *storage.PostgresStore, minio *storage.MinIOStore, producer *queue.Producer, cascades *cascadestore.Registry, dedupe config.DedupeConfig) *Processor {
	return &Processor{
		db:        db,
		minio:     minio,
		producer:  producer,
		cascades:  cascades,
		dedupe:    dedupe,
		dedupers:  make(map[uuid.UUID]*pipeline.Deduper),
		completed: make(map[uuid.UUID]int),
	}
}

// ProcessTask runs the façade for one frame of a job and publishes a
// FaceResultEvent with its outcome.
func (p *Processor) ProcessTask(ctx context.Context, task models.DetectJobTask) error {
	observability.FramesProcessed.WithLabelValues(task.JobID.String()).Inc()

	frameData, err := p.minio.GetObject(ctx, task.FrameRef)
	if err != nil {
		return fmt.Errorf("fetch frame %s: %w", task.FrameRef, err)
	}

	img, err := png.Decode(bytes.NewReader(frameData))
	if err != nil {
		return fmt.Errorf("decode frame %s: %w", task.FrameRef, err)
	}

	faceCascade, _, err := p.cascades.Get(ctx, task.FaceCascade)
	if err != nil {
		return fmt.Errorf("load face cascade %s: %w", task.FaceCascade, err)
	}
	eyeCascade, _, err := p.cascades.Get(ctx, task.EyeCascade)
	if err != nil {
		return fmt.Errorf("load eye cascade %s: %w", task.EyeCascade, err)
	}
	observability.CascadeCacheSize.Set(float64(len(p.cascades.Names())))

	pl := pipeline.New(faceCascade, eyeCascade)
	result, err := pl.Run(img)
	if err != nil {
		return fmt.Errorf("run pipeline for job %s frame %d: %w", task.JobID, task.FrameIndex, err)
	}

	evt := models.FaceResultEvent{
		JobID:      task.JobID,
		FrameIndex: task.FrameIndex,
		Outcome:    models.Outcome(result.Outcome.String()),
	}

	if result.Outcome != pipeline.OutcomeNoFace {
		observability.FacesDetected.WithLabelValues(task.JobID.String()).Inc()
		evt.RectX, evt.RectY, evt.RectW, evt.RectH = result.Face.X, result.Face.Y, result.Face.W, result.Face.H
	}

	if result.Outcome == pipeline.OutcomeNormalized {
		evt.EyeLeftX, evt.EyeLeftY = result.Eyes.Left.X, result.Eyes.Left.Y
		evt.EyeRightX, evt.EyeRightY = result.Eyes.Right.X, result.Eyes.Right.Y
		evt.Distance = result.Distance
		evt.Angle = result.Angle

		keep := p.deduperFor(task.JobID).Update([]detect.Rect{result.Face})[0]
		evt.Deduped = !keep

		if keep {
			cropKey := fmt.Sprintf("crops/%s/%d.png", task.JobID, task.FrameIndex)
			var buf bytes.Buffer
			if err := png.Encode(&buf, result.Crop); err != nil {
				return fmt.Errorf("encode crop for job %s frame %d: %w", task.JobID, task.FrameIndex, err)
			}
			if err := p.minio.PutObject(ctx, cropKey, buf.Bytes(), "image/png"); err != nil {
				return fmt.Errorf("store crop for job %s frame %d: %w", task.JobID, task.FrameIndex, err)
			}
			evt.CropKey = cropKey
		} else {
			observability.FacesDeduped.WithLabelValues(task.JobID.String()).Inc()
		}
	}

	if err := p.producer.PublishEvent(ctx, task.JobID.String(), evt); err != nil {
		return fmt.Errorf("publish event for job %s frame %d: %w", task.JobID, task.FrameIndex, err)
	}

	p.markComplete(ctx, task.JobID)
	return nil
}

func (p *Processor) deduperFor(jobID uuid.UUID) *pipeline.Deduper {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.dedupers[jobID]
	if !ok {
		d = pipeline.NewDeduper(jobID.String(), p.dedupe.MaxAge, p.dedupe.MinHits)
		p.dedupers[jobID] = d
	}
	return d
}

// markComplete tracks how many of a job's frames have been processed
// and flips the job to done once every frame has reported in.
func (p *Processor) markComplete(ctx context.Context, jobID uuid.UUID) {
	p.mu.Lock()
	p.completed[jobID]++
	n := p.completed[jobID]
	p.mu.Unlock()

	job, err := p.db.GetJob(ctx, jobID)
	if err != nil || job == nil {
		return
	}
	if n >= job.FrameCount {
		_ = p.db.UpdateJobStatus(ctx, jobID, models.JobStatusDone, "")
		p.mu.Lock()
		delete(p.dedupers, jobID)
		delete(p.completed, jobID)
		p.mu.Unlock()
	} else if job.Status == models.JobStatusQueued {
		_ = p.db.UpdateJobStatus(ctx, jobID, models.JobStatusProcessing, "")
	}
}
