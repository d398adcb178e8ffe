package tasks

import (
	"context"
	"log/slog"

	"github.com/aperam/ai-hub/app/news"
)

// DefaultQueries are the dashboard's news panels.
func DefaultQueries() []news.Query {
	ops := []news.Operation{news.OpBreaking, news.OpResearch, news.OpIndustry}

	queries := make([]news.Query, len(ops))
	for i, op := range ops {
		queries[i] = news.Query{Operation: op, Limit: op.DefaultLimit()}
	}
	return queries
}

type RefreshNewsTask struct {
	Task
	Query   news.Query
	service NewsService
}

func NewRefreshNewsTask(query news.Query, service NewsService) *RefreshNewsTask {
	return &RefreshNewsTask{
		Task:    NewTask(TaskTypeRefreshNews, query.Key()),
		Query:   query,
		service: service,
	}
}

func (t *RefreshNewsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items := t.service.Refresh(ctx, t.Query)

	// Refresh degrades instead of failing; an interrupted run is the only error.
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.Info("Task completed", "type", string(t.Type), "query", t.Name, "items", len(items), "duration", t.GetDuration())

	return nil
}
