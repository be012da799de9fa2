package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *time.Time
		wantErr bool
	}{
		{name: "blank", input: "  ", want: nil},
		{name: "date only", input: "2025-01-31", want: ptr(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))},
		{name: "rfc3339", input: "2025-02-01T10:30:00Z", want: ptr(time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC))},
		{name: "zoned converts to utc", input: "2025-02-01T19:30:00+09:00", want: ptr(time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC))},
		{name: "garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptionalDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
