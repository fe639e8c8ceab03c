package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
)

func buildDSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname), nil
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not reachable: %w", err)
	}
	return db, nil
}

func existsTestRun(ctx context.Context, db *sql.DB, id int64) bool {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM test_runs WHERE id = $1)", id).Scan(&exists)
	return err == nil && exists
}

func fetchTaskWindow(ctx context.Context, db *sql.DB, testRunID int64) (int, int, error) {
	const q = `
SELECT tasks.page, tasks.per_page
FROM tasks
JOIN handlers ON handlers.task_id = tasks.id
JOIN test_runs ON test_runs.handler_id = handlers.id
WHERE test_runs.id = $1
LIMIT 1`

	var page sql.NullInt64
	var perPage sql.NullInt64
	err := db.QueryRowContext(ctx, q, testRunID).Scan(&page, &perPage)
	if err != nil && err != sql.ErrNoRows {
		return 0, 0, err
	}

	return normalizePositiveInt(page.Int64, 1), normalizePositiveInt(perPage.Int64, 1), nil
}

// fetchSamples returns one page of samples keyed by sample id. Rows with a
// NULL value are skipped.
func fetchSamples(ctx context.Context, db *sql.DB, page, perPage int) (map[string]float64, error) {
	limit, offset := windowLimitOffset(page, perPage)

	rows, err := db.QueryContext(ctx, "SELECT id, value FROM samples ORDER BY id ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make(map[string]float64, limit)
	for rows.Next() {
		var id int64
		var v sql.NullFloat64
		if err := rows.Scan(&id, &v); err != nil {
			return nil, err
		}
		if v.Valid {
			samples[sampleKey(id)] = v.Float64
		}
	}
	return samples, rows.Err()
}

func sampleKey(id int64) string {
	return "sample:" + strconv.FormatInt(id, 10)
}

func windowLimitOffset(page, perPage int) (limit, offset int) {
	pp := perPage
	if pp <= 0 {
		pp = 1
	}
	pg := page
	if pg <= 0 {
		pg = 1
	}
	return pp, (pg - 1) * pp
}

func normalizePositiveInt(value int64, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return int(value)
}

func insertTestResult(ctx context.Context, db *sql.DB, testRunID int64, st Stats, m measurement) error {
	const q = `
INSERT INTO test_results
  (test_run_id, mean, median, q1, q3, min, max, standard_deviation,
   interquartile_range, min_bound, max_bound, fuzziness,
   low_outliers, low_values, normal_values, high_values, high_outliers,
   duration, memory, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NOW(),NOW())
`
	_, err := db.ExecContext(ctx, q,
		testRunID,
		st.Mean, st.Median, st.Q1, st.Q3, st.Min, st.Max, st.StdDev,
		st.IQR, st.MinBound, st.MaxBound, st.Fuzziness,
		st.LowOutliers, st.LowValues, st.NormalValues, st.HighValues, st.HighOutliers,
		m.Duration.Seconds(), m.PeakRSS,
	)
	return err
}
