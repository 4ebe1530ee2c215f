package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const ContextProfileKey = "PERFORMANCE_PROFILE"

// NewProfile starts a performance profile. The returned func finalizes
// the total elapsed time.
func NewProfile() (*PerformanceProfile, func()) {
	p := &PerformanceProfile{
		StartTime: time.Now(),
	}
	return p, p.End
}

type PerformanceProfileEvent struct {
	Name      string    `json:"name"`
	ElapsedMs int64     `json:"elapsedMs"`
	Time      time.Time `json:"time"`
}

type PerformanceProfile struct {
	StartTime time.Time                 `json:"-"`
	Events    []PerformanceProfileEvent `json:"events"`
	TotalMs   int64                     `json:"totalMs"`
}

// GetProfile returns the profile attached to the context, or nil. Callers
// treat a nil profile as "profiling disabled".
func GetProfile(ctx context.Context) *PerformanceProfile {
	profile, ok := ctx.Value(ContextProfileKey).(*PerformanceProfile)
	if !ok {
		return nil
	}
	return profile
}

func (p *PerformanceProfile) End() {
	p.TotalMs = time.Since(p.StartTime).Milliseconds()
}

// Add records a named event with elapsed time since the previous one.
// Safe to call on a nil profile.
func (p *PerformanceProfile) Add(name string) {
	if p == nil {
		return
	}
	last := p.StartTime
	if len(p.Events) > 0 {
		last = p.Events[len(p.Events)-1].Time
	}
	now := time.Now()
	p.Events = append(p.Events, PerformanceProfileEvent{
		Name:      name,
		ElapsedMs: now.Sub(last).Milliseconds(),
		Time:      now,
	})
}

func (p PerformanceProfile) Print() {
	bytes, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}
