package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"boxplot_worker/boxplot"
)

const (
	popTimeout     = 5 * time.Second
	reconnectDelay = 2 * time.Second
)

// runOptions are the per-run settings of processTestRun.
type runOptions struct {
	Fuzziness float64
	// Report, when set, receives the rendered boxplot.
	Report io.Writer
}

func processTestRun(ctx context.Context, db *sql.DB, testRunID int64, opts runOptions) error {
	if !existsTestRun(ctx, db, testRunID) {
		return fmt.Errorf("test_runs id %d not found", testRunID)
	}
	page, perPage, err := fetchTaskWindow(ctx, db, testRunID)
	if err != nil {
		return fmt.Errorf("fetch task window failed: %w", err)
	}
	samples, err := fetchSamples(ctx, db, page, perPage)
	if err != nil {
		return fmt.Errorf("fetch samples failed: %w", err)
	}

	var (
		stats Stats
		bp    *boxplot.BoxPlot
	)
	m := measure(func() {
		stats, bp = calculateStatistics(boxplotName(testRunID), samples, opts.Fuzziness)
	})

	if err := insertTestResult(ctx, db, testRunID, stats, m); err != nil {
		return fmt.Errorf("insert test_result failed: %w", err)
	}
	if bp != nil {
		logger.Debugf("boxplot for test_run=%d:\n%s", testRunID, bp)
		if opts.Report != nil {
			if _, err := io.WriteString(opts.Report, bp.String()); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}
	}
	logger.Infof("processed test_run=%d samples=%d high_outliers=%d low_outliers=%d duration=%.6fs memory_bytes=%.0f",
		testRunID, stats.Count, stats.HighOutliers, stats.LowOutliers, m.Duration.Seconds(), m.PeakRSS)
	return nil
}

func boxplotName(testRunID int64) string {
	return "test_run " + strconv.FormatInt(testRunID, 10)
}

// runService consumes the Sidekiq queue until ctx is done.
func runService(ctx context.Context, db *sql.DB, cfg *Config) error {
	queue, err := newJobQueue(cfg.RedisURL, cfg.Queue)
	if err != nil {
		return err
	}
	defer queue.Close()

	for ctx.Err() == nil {
		if err := queue.ping(ctx); err != nil {
			logger.Warnf("redis connect failed: %v; retrying in %s", err, reconnectDelay)
			sleep(ctx, reconnectDelay)
			continue
		}
		logger.Infof("listening on %s", queue.key)
		consume(ctx, db, cfg, queue)
		sleep(ctx, time.Second)
	}
	return nil
}

// consume handles jobs until the connection fails or ctx is done.
func consume(ctx context.Context, db *sql.DB, cfg *Config, queue *jobQueue) {
	for ctx.Err() == nil {
		payload, err := queue.pop(ctx, popTimeout)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Errorf("redis read error: %v", err)
			}
			return
		}
		if payload == "" {
			continue // timeout
		}
		handleJob(ctx, db, cfg, payload)
	}
}

func handleJob(ctx context.Context, db *sql.DB, cfg *Config, payload string) {
	job, err := decodeJob(payload)
	if err != nil {
		logger.Warn(err)
		return
	}
	if !job.accepted() {
		logger.Infof("skipping job class=%s", job.Class)
		return
	}
	id, err := job.testRunID()
	if err != nil {
		logger.Warnf("job missing test_run_id: %v: %s", err, payload)
		return
	}
	fuzziness, err := job.fuzziness(cfg.Fuzziness)
	if err != nil {
		logger.Warnf("job for test_run=%d rejected: %v", id, err)
		return
	}
	if err := processTestRun(ctx, db, id, runOptions{Fuzziness: fuzziness}); err != nil {
		logger.Errorf("process error: %v", err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
