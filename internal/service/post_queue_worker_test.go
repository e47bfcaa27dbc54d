package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"versepin/internal/domain"
	"versepin/internal/service"
	"versepin/mocks"
)

func TestPostQueueWorker_PollsAndDispatchesProcessing(t *testing.T) {
	repo := new(mocks.MockPostRepository)
	postSvc := new(mocks.MockPostService)

	post := *queuedPost()
	post.Status = domain.PostStatusProcessing

	// First poll returns one post, subsequent polls return empty
	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Post{post}, nil).Once()
	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Post{}, nil).Maybe()

	postSvc.On("ProcessPost", mock.Anything, mock.AnythingOfType("*domain.Post")).
		Return().Maybe()

	cfg := service.PostQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}
	worker := service.NewPostQueueWorker(repo, postSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	repo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	postSvc.AssertCalled(t, "ProcessPost", mock.Anything, mock.AnythingOfType("*domain.Post"))
}

func TestPostQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	repo := new(mocks.MockPostRepository)
	postSvc := new(mocks.MockPostService)

	cfg := service.PostQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  2,
	}

	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Post{}, nil).Maybe()

	worker := service.NewPostQueueWorker(repo, postSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	// Verify ClaimQueued was called with limit <= concurrency
	for _, call := range repo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestPostQueueWorker_CleanShutdown(t *testing.T) {
	repo := new(mocks.MockPostRepository)
	postSvc := new(mocks.MockPostService)

	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Post{}, nil).Maybe()

	cfg := service.PostQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}
	worker := service.NewPostQueueWorker(repo, postSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Cancel immediately
	cancel()

	select {
	case <-done:
		// Start returned promptly
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestPostQueueWorker_EmptyQueueDoesNothing(t *testing.T) {
	repo := new(mocks.MockPostRepository)
	postSvc := new(mocks.MockPostService)

	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.Post{}, nil).Maybe()

	cfg := service.PostQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}
	worker := service.NewPostQueueWorker(repo, postSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	postSvc.AssertNotCalled(t, "ProcessPost", mock.Anything, mock.Anything)
}

func TestPostQueueWorker_ClaimQueuedError(t *testing.T) {
	repo := new(mocks.MockPostRepository)
	postSvc := new(mocks.MockPostService)

	repo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db connection error")).Maybe()

	cfg := service.PostQueueConfig{
		PollInterval: 50 * time.Millisecond,
		Concurrency:  5,
	}
	worker := service.NewPostQueueWorker(repo, postSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Let a few poll cycles happen with errors
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// No panic, no goroutine leak
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	postSvc.AssertNotCalled(t, "ProcessPost", mock.Anything, mock.Anything)
}
