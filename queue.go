package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// acceptedJobClasses are the Sidekiq worker classes this worker handles.
var acceptedJobClasses = map[string]bool{
	"RubyWorker":    true,
	"GoWorker":      true,
	"BoxPlotWorker": true,
}

type sidekiqJob struct {
	Class string            `json:"class"`
	Args  []json.RawMessage `json:"args"`
	Queue string            `json:"queue"`
	// Fuzziness optionally overrides the configured tolerance for this job.
	Fuzziness *float64 `json:"fuzziness,omitempty"`
}

func decodeJob(payload string) (sidekiqJob, error) {
	var job sidekiqJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return sidekiqJob{}, fmt.Errorf("invalid job json: %w", err)
	}
	return job, nil
}

func (j sidekiqJob) accepted() bool {
	return acceptedJobClasses[j.Class]
}

// testRunID returns the first job argument, the test run to process.
func (j sidekiqJob) testRunID() (int64, error) {
	if len(j.Args) == 0 {
		return 0, errors.New("job has no arguments")
	}
	id, err := parseInt64(j.Args[0])
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid test_run_id %d", id)
	}
	return id, nil
}

// fuzziness returns the job's tolerance override, or fallback.
func (j sidekiqJob) fuzziness(fallback float64) (float64, error) {
	if j.Fuzziness == nil {
		return fallback, nil
	}
	if f := *j.Fuzziness; f < 0 || f > 100 {
		return 0, fmt.Errorf("fuzziness %v out of range [0,100]", f)
	}
	return *j.Fuzziness, nil
}

// jobQueue pops Sidekiq jobs off a Redis list.
type jobQueue struct {
	rdb *redis.Client
	key string
}

func queueKey(name string) string {
	return "queue:" + name
}

func newJobQueue(redisURL, name string) (*jobQueue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	return &jobQueue{rdb: redis.NewClient(opts), key: queueKey(name)}, nil
}

func (q *jobQueue) ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}

// pop blocks up to timeout for the next payload. It returns "" with a nil
// error when the timeout expires.
func (q *jobQueue) pop(ctx context.Context, timeout time.Duration) (string, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	// [key, payload]
	if len(res) != 2 {
		return "", fmt.Errorf("unexpected BRPOP reply: %v", res)
	}
	return res[1], nil
}

func (q *jobQueue) Close() error {
	return q.rdb.Close()
}
