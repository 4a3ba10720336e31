package queue

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/bcrypt"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	queueBuffer    = 64
)

var hashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "notes",
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt operations executed by the hash pool.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

var queueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "notes",
		Name:      "password_hash_queue_depth",
		Help:      "Number of bcrypt jobs waiting for a pool worker.",
	},
)

type hashResult struct {
	hash string
	err  error
}

type hashJob struct {
	run   func() hashResult
	reply chan hashResult
}

// HashPool executes bcrypt computations on a fixed set of worker goroutines.
// Handlers block only on the reply channel, so the number of concurrently
// burning bcrypt computations is capped at the worker count while the
// process keeps serving unrelated requests.
type HashPool struct {
	jobs    chan hashJob
	cost    int
	workers int
}

// NewHashPool creates a pool with numWorkers workers hashing at the given
// bcrypt cost. Non-positive arguments fall back to defaults.
func NewHashPool(numWorkers, cost int) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &HashPool{
		jobs:    make(chan hashJob, queueBuffer),
		cost:    cost,
		workers: numWorkers,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx)
	}
}

// Hash derives a bcrypt digest with a fresh random salt.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	return p.submit(ctx, func() hashResult {
		start := time.Now()
		hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
		hashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
		if err != nil {
			return hashResult{err: err}
		}
		return hashResult{hash: string(hash)}
	})
}

// Compare checks plaintext against a stored digest. bcrypt recomputes with
// the salt and cost embedded in the digest and compares in constant time.
func (p *HashPool) Compare(ctx context.Context, hashed, plaintext string) error {
	_, err := p.submit(ctx, func() hashResult {
		start := time.Now()
		err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
		hashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return hashResult{err: domain.ErrInvalidCredentials}
		}
		return hashResult{err: err}
	})
	return err
}

// submit enqueues a job and waits for its result, honoring cancellation on
// both sides of the handoff.
func (p *HashPool) submit(ctx context.Context, run func() hashResult) (string, error) {
	job := hashJob{run: run, reply: make(chan hashResult, 1)}

	queueDepth.Inc()
	select {
	case p.jobs <- job:
	case <-ctx.Done():
		queueDepth.Dec()
		return "", ctx.Err()
	}

	select {
	case res := <-job.reply:
		return res.hash, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			queueDepth.Dec()
			job.reply <- job.run()
		}
	}
}
