package laptime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackday/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Milliseconds
		wantErr bool
	}{
		{name: "minutes seconds centis", input: "1:23.45", want: 83450},
		{name: "two digit minutes", input: "12:03.40", want: 723400},
		{name: "bare seconds", input: "9.99", want: 9990},
		{name: "zero padded seconds", input: "0:05.00", want: 5000},
		{name: "zero", input: "0.00", want: 0},
		{name: "seconds out of range", input: "1:60.00", wantErr: true},
		{name: "missing centis", input: "1:23.4", wantErr: true},
		{name: "too many centis", input: "1:23.456", wantErr: true},
		{name: "no separator", input: "12345", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "fast lap", wantErr: true},
		{name: "negative", input: "-1:23.45", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrLapTimeFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   models.Milliseconds
		want    string
		wantErr bool
	}{
		{name: "minutes seconds centis", input: 83450, want: "1:23.45"},
		{name: "sub minute", input: 9990, want: "0:09.99"},
		{name: "zero", input: 0, want: "0:00.00"},
		{name: "long time", input: 3600000, want: "60:00.00"},
		{name: "negative rejected", input: -10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Whole-centisecond values must survive a format/parse cycle.
	for _, ms := range []models.Milliseconds{0, 10, 5000, 59990, 60000, 83450, 723400, 5999990} {
		text, err := Format(ms)
		require.NoError(t, err)
		back, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, ms, back, "round trip of %s", text)
	}
}
