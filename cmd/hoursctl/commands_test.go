package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "Mon-Sat: 10AM-6PM, Sun: Closed")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Monday: 10:00 AM - 6:00 PM", lines[0])
	assert.Equal(t, "Sunday: Closed", lines[6])
}

func TestParseCommandJSON(t *testing.T) {
	out, err := execute(t, "parse", "--json", "Tue:", "9AM-5PM")
	require.NoError(t, err)

	var payload struct {
		Records []struct {
			Day      string `json:"day"`
			OpenTime string `json:"open_time"`
			IsClosed bool   `json:"is_closed"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Records, 7)
	assert.True(t, payload.Records[0].IsClosed)
	assert.Equal(t, "09:00", payload.Records[1].OpenTime)
}

func TestStatusCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "open",
			args: []string{"status", "Mon-Sat: 10AM-6PM", "--at", "2024-01-06T15:00:00Z", "--tz", "UTC"},
			want: "Open (Closes at 6:00 PM)\n",
		},
		{
			name: "closed day in another zone",
			args: []string{"status", "Mon-Sat: 10AM-6PM", "--at", "2024-01-07T15:00:00Z", "--tz", "America/New_York"},
			want: "Closed (Closed on Sunday)\nNext opening: Monday at 10:00 AM\n",
		},
		{
			name: "before opening",
			args: []string{"status", "Mon-Fri: 9AM-5PM", "--at", "2024-01-01T08:30:00Z", "--tz", "UTC"},
			want: "Closed (Opens at 9:00 AM)\nNext opening: Monday at 9:00 AM\n",
		},
		{
			name: "without --tz the offset of --at is used",
			args: []string{"status", "Mon-Fri: 9AM-5PM", "--at", "2024-01-01T08:30:00-05:00"},
			want: "Closed (Opens at 9:00 AM)\nNext opening: Monday at 9:00 AM\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStatusCommandErrors(t *testing.T) {
	_, err := execute(t, "status", "Mon: 9AM-5PM", "--at", "noon")
	assert.Error(t, err)

	_, err = execute(t, "status", "Mon: 9AM-5PM", "--tz", "Nowhere/Land")
	assert.Error(t, err)

	_, err = execute(t, "status")
	assert.Error(t, err)
}

func TestStatusTimezoneFlagUsage(t *testing.T) {
	status, _, err := newRootCmd(&bytes.Buffer{}).Find([]string{"status"})
	require.NoError(t, err)

	flag := status.Flags().Lookup("tz")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "the offset of --at")
	assert.NotContains(t, flag.Usage, "default local")
}

func TestRunStatusUsesClock(t *testing.T) {
	var out bytes.Buffer
	fixed := func() time.Time { return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, runStatus(&out, "Mon: 9AM-5PM", &options{asJSON: true, zone: "UTC"}, fixed))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, true, payload["is_open"])
	assert.Equal(t, "Closes at 5:00 PM", payload["next_change"])
	assert.NotContains(t, payload, "next_opening")
}
