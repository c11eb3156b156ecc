package scorer

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	mockModel    = "mock"
	mockScoreMin = 65
	mockScoreMax = 95 // exclusive
)

// Mock produces placeholder scores in [65,95) from a seeded source after a
// simulated delay.
type Mock struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock returns a Mock seeded with seed, or with the clock when seed is 0.
func NewMock(seed int64, delay time.Duration) *Mock {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Mock{delay: delay, rng: rand.New(rand.NewSource(seed))}
}

// Score waits for the configured delay, then draws the compliance score and
// the latest historical score.
func (m *Mock) Score(ctx context.Context, _ *Request) (*Response, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return &Response{
		ComplianceScore: m.draw(),
		LatestScore:     m.draw(),
		Model:           mockModel,
	}, nil
}

func (m *Mock) draw() int {
	return mockScoreMin + m.rng.Intn(mockScoreMax-mockScoreMin)
}
