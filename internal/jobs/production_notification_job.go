package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchProductionNotificationsCommand) (commands.DispatchResult, error)
}

// ProductionNotificationJob retries production notifications that could not be
// delivered when their order entered PREPARING.
type ProductionNotificationJob struct {
	handler   DispatchHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewProductionNotificationJob creates the job. schedule is a six field cron
// expression (seconds first). A run still in progress makes the next tick skip.
func NewProductionNotificationJob(
	handler DispatchHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *ProductionNotificationJob {
	return &ProductionNotificationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "production_notification_job"),
	}
}

func (j *ProductionNotificationJob) Name() string {
	return "production notification job"
}

func (j *ProductionNotificationJob) Start() error {
	cmd, err := commands.NewDispatchProductionNotificationsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(context.Background(), cmd) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Production notification job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running dispatch to finish.
func (j *ProductionNotificationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Production notification job stopped")
}

func (j *ProductionNotificationJob) run(ctx context.Context, cmd commands.DispatchProductionNotificationsCommand) {
	if _, err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Production notification dispatch failed", "error", err)
	}
}
