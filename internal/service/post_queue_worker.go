package service

import (
	"context"
	"log"
	"sync"
	"time"

	"versepin/internal/port"
)

// PostQueueConfig holds settings for the post queue worker.
type PostQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
}

// PostQueueWorker polls for queued posts and dispatches them for
// extraction and normalization.
type PostQueueWorker struct {
	repo    port.PostRepository
	service PostService
	cfg     PostQueueConfig
	wg      sync.WaitGroup
}

// NewPostQueueWorker creates a new PostQueueWorker.
func NewPostQueueWorker(repo port.PostRepository, service PostService, cfg PostQueueConfig) *PostQueueWorker {
	return &PostQueueWorker{
		repo:    repo,
		service: service,
		cfg:     cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight goroutines have finished.
func (w *PostQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("postQueueWorker: started (poll=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("postQueueWorker: shutting down, waiting for in-flight posts...")
			w.wg.Wait()
			log.Printf("postQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			posts, err := w.repo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("postQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range posts {
				post := posts[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Fresh context so an in-flight extraction is not cut
					// off by the poll context going away.
					workCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()
					w.service.ProcessPost(workCtx, &post)
				}()
			}
		}
	}
}
