package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hireflow/ats-matching/internal/repositories"
)

// Worker drains the enrichment queue. Independent applications may be
// processed concurrently; a single application is only ever handled by one
// stage at a time inside its pipeline run.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueApplication(appID uuid.UUID)
}

type worker struct {
	appRepo     repositories.ApplicationRepository
	pipeline    EnrichmentPipeline
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	appRepo repositories.ApplicationRepository,
	pipeline EnrichmentPipeline,
	concurrency int,
) Worker {
	return &worker{
		appRepo:     appRepo,
		pipeline:    pipeline,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent processors\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processApplications(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingApplications(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueApplication implements Worker.
func (w *worker) EnqueueApplication(appID uuid.UUID) {
	select {
	case w.jobQueue <- appID:
		log.Printf("📥 Application %s enqueued for enrichment\n", appID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue application %s\n", appID)
	}
}

func (w *worker) processApplications(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case appID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing application %s\n", workerID, appID)
			if err := w.pipeline.ProcessApplication(ctx, appID); err != nil {
				// Already captured on the application record; log for the operator
				log.Printf("❌ Worker #%d failed application %s: %v\n", workerID, appID, err)
			}
		}
	}
}

func (w *worker) pollPendingApplications(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.appRepo.FindPending(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending applications: %v\n", err)
				continue
			}

			for _, app := range pending {
				w.EnqueueApplication(app.ID)
			}
		}
	}
}
