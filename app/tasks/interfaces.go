package tasks

import (
	"context"

	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/news"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to keep the news cache warm.
// Example usage:
//
//	scheduler := NewScheduler(service, m, interval, workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewRefreshNewsTask(query, service))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// NewsService is the part of news.Service the background tasks drive.
type NewsService interface {
	Refresh(ctx context.Context, q news.Query) []feed.Item
	TestSources(ctx context.Context) map[string]bool
}
