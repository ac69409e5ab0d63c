package service

import (
	"context"
	"sync"
	"time"
)

// UsageStatus es el resultado de consultar la cuota mensual de un doctor.
type UsageStatus struct {
	WithinLimit  bool `json:"within_limit"`
	CurrentCount int  `json:"current_count"`
	Limit        int  `json:"limit"`
}

// UsageLimiter lleva el contador de análisis por doctor y mes calendario.
// Check no consume cuota; Increment suma exactamente uno y nunca resta.
type UsageLimiter interface {
	Check(ctx context.Context, doctorID string) (UsageStatus, error)
	Increment(ctx context.Context, doctorID string) error
}

type memoryUsageLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
	now    func() time.Time
}

// NewMemoryUsageLimiter es el fallback sin Redis: el contador no sobrevive
// reinicios del proceso, suficiente para desarrollo y tests.
func NewMemoryUsageLimiter(limit int) UsageLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &memoryUsageLimiter{
		counts: make(map[string]int),
		limit:  limit,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func monthKey(doctorID string, now time.Time) string {
	return doctorID + ":" + now.Format("2006-01")
}

func (l *memoryUsageLimiter) Check(_ context.Context, doctorID string) (UsageStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := l.counts[monthKey(doctorID, l.now())]
	return UsageStatus{
		WithinLimit:  count < l.limit,
		CurrentCount: count,
		Limit:        l.limit,
	}, nil
}

func (l *memoryUsageLimiter) Increment(_ context.Context, doctorID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[monthKey(doctorID, l.now())]++
	return nil
}
