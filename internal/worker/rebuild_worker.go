package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/dwiky/store-backend/config"
	"github.com/dwiky/store-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RebuildFunc defines the function signature for batch rebuild operations.
// The context is cancelled when the worker stops, so long batches can bail out
// between items.
type RebuildFunc func(ctx context.Context) error

// RebuildWorker runs scheduled neighbor rebuilds with configurable intervals
type RebuildWorker struct {
	name            string
	cron            *cron.Cron
	rebuildFunc     RebuildFunc
	rebuildInterval time.Duration
	logger          *logger.Logger
	entryID         cron.EntryID
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewRebuildWorker creates a cron-scheduled worker with validation and defaults
func NewRebuildWorker(cfg *config.WorkerConfig, name string, rebuildFunc RebuildFunc, logger *logger.Logger) (*RebuildWorker, error) {
	// Set defaults for nil or empty config values
	var rebuildInterval time.Duration = 60 * time.Minute
	if cfg != nil && cfg.RebuildInterval != "" {
		duration, err := time.ParseDuration(cfg.RebuildInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid rebuild interval '%s': %v", cfg.RebuildInterval, err)
		}
		rebuildInterval = duration
	}

	return &RebuildWorker{
		name:            name,
		cron:            cron.New(),
		rebuildFunc:     rebuildFunc,
		rebuildInterval: rebuildInterval,
		logger:          logger.WithComponent("rebuild-worker"),
	}, nil
}

// Start schedules and begins the rebuild worker
func (w *RebuildWorker) Start() error {
	intervalStr := w.durationToCronExpression(w.rebuildInterval)
	w.logger.Info(fmt.Sprintf("Starting rebuild worker: %s (every %v)", w.name, w.rebuildInterval))

	w.ctx, w.cancel = context.WithCancel(context.Background())

	entryID, err := w.cron.AddFunc(intervalStr, func() {
		w.logger.Debug("Executing rebuild operation for worker: " + w.name)

		if err := w.rebuildFunc(w.ctx); err != nil {
			w.logger.Error("Rebuild operation failed for worker " + w.name + ": " + err.Error())
		} else {
			w.logger.Info("Rebuild operation completed successfully for worker: " + w.name)
		}
	})

	if err != nil {
		w.cancel()
		w.logger.Error("Failed to schedule rebuild worker " + w.name + ": " + err.Error())
		return err
	}

	w.entryID = entryID
	w.cron.Start()

	w.logger.Info("Rebuild worker started successfully: " + w.name)

	return nil
}

// Stop gracefully shuts down the rebuild worker, cancelling any in-flight batch
func (w *RebuildWorker) Stop() error {
	w.logger.Info("Stopping rebuild worker: " + w.name)

	if w.cancel != nil {
		w.cancel()
	}

	// Remove the scheduled entry
	if w.entryID > 0 {
		w.cron.Remove(w.entryID)
	}

	ctx := w.cron.Stop()
	<-ctx.Done() // Wait for graceful shutdown

	w.logger.Info("Rebuild worker stopped: " + w.name)

	return nil
}

// IsRunning checks if the worker has active cron entries
func (w *RebuildWorker) IsRunning() bool {
	return len(w.cron.Entries()) > 0
}

// durationToCronExpression converts duration to cron format with fallback
func (w *RebuildWorker) durationToCronExpression(duration time.Duration) string {
	minutes := int(duration.Minutes())
	hours := int(duration.Hours())

	if hours > 0 && minutes%60 == 0 {
		return fmt.Sprintf("0 */%d * * *", hours)
	} else if minutes > 0 && minutes < 60 {
		return fmt.Sprintf("*/%d * * * *", minutes)
	}

	// Fallback for unsupported durations
	w.logger.Warn(fmt.Sprintf("Unsupported rebuild interval %v, defaulting to 60 minutes", duration))
	return "0 */1 * * *"
}
