package jobs

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// overdueSweepSchedule runs the sweep at the top of every minute.
const overdueSweepSchedule = "0 * * * * *"

// OverdueOrderJob periodically scans for active orders past their due date.
// Each sweep updates the overdue gauge and logs every late order so
// operations can chase the seller or step in.
type OverdueOrderJob struct {
	handler queries.GetOverdueOrdersQueryHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewOverdueOrderJob creates the sweep job.
func NewOverdueOrderJob(handler queries.GetOverdueOrdersQueryHandler, logger *zap.Logger) *OverdueOrderJob {
	return &OverdueOrderJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "overdue_order_job")),
	}
}

// Start schedules the sweep to run every minute.
func (j *OverdueOrderJob) Start() error {
	_, err := j.cron.AddFunc(overdueSweepSchedule, func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Overdue order job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *OverdueOrderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Overdue order job stopped")
}

func (j *OverdueOrderJob) sweep(ctx context.Context) {
	query := queries.NewGetOverdueOrdersQuery(time.Now().UTC())

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Overdue order sweep failed", zap.Error(err))
		return
	}

	metrics.OverdueOrders.Set(float64(len(overdue)))

	for _, o := range overdue {
		j.logger.Warn("Order is past its due date",
			zap.String("order_id", o.ID.String()),
			zap.String("order_number", o.OrderNumber),
			zap.String("status", o.Status),
			zap.Time("due_date", o.DueDate),
		)
	}
}
