package postgres

import (
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolWaitReport(t *testing.T) {
	base := sql.DBStats{WaitCount: 10, WaitDuration: time.Second}

	tests := []struct {
		name      string
		cur       sql.DBStats
		wantOK    bool
		wantLevel slog.Level
	}{
		{name: "no new waits", cur: base},
		{
			name:      "short waits",
			cur:       sql.DBStats{WaitCount: 12, WaitDuration: time.Second + 10*time.Millisecond},
			wantOK:    true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "long waits",
			cur:       sql.DBStats{WaitCount: 11, WaitDuration: time.Second + 80*time.Millisecond},
			wantOK:    true,
			wantLevel: slog.LevelWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, attrs, ok := poolWaitReport(base, tt.cur)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Empty(t, attrs)

				return
			}
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, "waitCountDelta", attrs[0].Key)
		})
	}
}

func TestPoolMonitorWithoutLoggerIsInert(t *testing.T) {
	m := newPoolMonitor(nil, nil)

	m.start()
	m.stop()

	assert.Nil(t, m.cancel)
}
