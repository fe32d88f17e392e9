package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	require.NoError(t, Init("Asia/Shanghai"))
	t.Cleanup(func() { _ = Init("") })

	tests := []struct {
		name    string
		at      time.Time
		wantKey string
	}{
		{
			name:    "UTC afternoon rolls into next Shanghai day",
			at:      time.Date(2025, 1, 7, 16, 30, 0, 0, time.UTC),
			wantKey: "20250108",
		},
		{
			name:    "UTC morning stays on same Shanghai day",
			at:      time.Date(2025, 1, 7, 3, 0, 0, 0, time.UTC),
			wantKey: "20250107",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, DayKey(tt.at))
		})
	}
}

func TestInit_RejectsUnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus_Mons"))
}
