package tasks

import (
	"context"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"github.com/aperam/ai-hub/app/metrics"
)

type ProbeSourcesTask struct {
	Task
	service NewsService
	metrics *metrics.Metrics
}

func NewProbeSourcesTask(service NewsService, m *metrics.Metrics) *ProbeSourcesTask {
	return &ProbeSourcesTask{
		Task:    NewTask(TaskTypeProbeSources, "all"),
		service: service,
		metrics: m,
	}
}

func (t *ProbeSourcesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	status := t.service.TestSources(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	t.metrics.RecordSourceStatus(status)

	down := lo.Keys(lo.OmitBy(status, func(_ string, up bool) bool { return up }))
	slices.Sort(down)
	working := len(status) - len(down)

	if len(down) > 0 {
		slog.Warn("Sources without entries", "count", len(down), "sources", down)
	}

	slog.Info("Task completed", "type", string(t.Type), "working", working, "total", len(status), "duration", t.GetDuration())

	return nil
}
