package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreshAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := func(d time.Duration) *time.Duration { return &d }

	cases := []struct {
		name        string
		hasValue    bool
		markedStale bool
		fetchedAt   time.Time
		ttl         *time.Duration
		want        bool
	}{
		{
			name: "no value is never fresh",
			ttl:  nil,
			want: false,
		},
		{
			name:     "no value is never fresh even within ttl",
			ttl:      ttl(time.Hour),
			want:     false,
			hasValue: false,
		},
		{
			name:        "manual stale overrides everything",
			hasValue:    true,
			markedStale: true,
			fetchedAt:   now,
			ttl:         nil,
			want:        false,
		},
		{
			name:      "nil ttl never ages out",
			hasValue:  true,
			fetchedAt: now.Add(-1000 * time.Hour),
			ttl:       nil,
			want:      true,
		},
		{
			name:      "within ttl is fresh",
			hasValue:  true,
			fetchedAt: now.Add(-4 * time.Second),
			ttl:       ttl(5 * time.Second),
			want:      true,
		},
		{
			name:      "boundary elapsed == ttl is stale",
			hasValue:  true,
			fetchedAt: now.Add(-5 * time.Second),
			ttl:       ttl(5 * time.Second),
			want:      false,
		},
		{
			name:      "past ttl is stale",
			hasValue:  true,
			fetchedAt: now.Add(-6 * time.Second),
			ttl:       ttl(5 * time.Second),
			want:      false,
		},
		{
			name:      "zero ttl expires at the instant of fetch",
			hasValue:  true,
			fetchedAt: now,
			ttl:       ttl(0),
			want:      false,
		},
		{
			name:      "clock stepped backwards saturates to zero elapsed",
			hasValue:  true,
			fetchedAt: now.Add(time.Hour),
			ttl:       ttl(5 * time.Second),
			want:      true,
		},
		{
			name:        "clock stepped backwards still honours manual stale",
			hasValue:    true,
			markedStale: true,
			fetchedAt:   now.Add(time.Hour),
			ttl:         ttl(5 * time.Second),
			want:        false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := freshAt(tc.hasValue, tc.markedStale, tc.fetchedAt, tc.ttl, now)
			assert.Equal(t, tc.want, got)
		})
	}
}
