package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_Unmarshal_MonitorPayload(t *testing.T) {
	t.Parallel()

	payload := `[
	  {"id": 17, "title": "Go developer", "description": "<p>Build <b>APIs</b></p>", "url": "https://example.com/j/17", "posted_date": "2024-03-01T10:15:00"},
	  {"id": "~01abc", "title": "React dev", "description": "", "url": "https://example.com/j/2", "posted_date": "2024-03-01T10:15:00Z"}
	]`

	var jobs []Job
	require.NoError(t, json.Unmarshal([]byte(payload), &jobs))
	require.Len(t, jobs, 2)

	assert.Equal(t, JobID("17"), jobs[0].ID)
	assert.Equal(t, "Go developer", jobs[0].Title)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), jobs[0].PostedDate.Time)

	assert.Equal(t, JobID("~01abc"), jobs[1].ID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), jobs[1].PostedDate.Time)
}

func TestTimestamp_Lenient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		zero bool
	}{
		{`"2024-03-01T10:15:00.123456"`, false},
		{`"2024-03-01 10:15:00"`, false},
		{`"Fri, 01 Mar 2024 10:15:00 +0000"`, false},
		{`1709288100`, false},
		{`"yesterday"`, true},
		{`null`, true},
	}
	for _, tc := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(tc.in), &ts), tc.in)
		assert.Equal(t, tc.zero, ts.Time.IsZero(), tc.in)
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Equal(t, "yesterday", ts.Raw)
}

func TestTimestamp_UnixOutOfRangeKeepsRaw(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`1e300`, `-1e300`, `9223372036854775808`} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, ts.Time.IsZero(), in)
		assert.Equal(t, in, ts.Raw)
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`253402300799`), &ts))
	assert.Equal(t, 9999, ts.Time.Year())
}

func TestSettings_MissingSkills(t *testing.T) {
	t.Parallel()

	var s Settings
	require.NoError(t, json.Unmarshal([]byte(`{"check_interval": 120, "other": true}`), &s))
	assert.Empty(t, s.Skills)
	assert.Equal(t, Seconds(120), s.CheckInterval)
}

func TestSettings_LenientCheckInterval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Seconds
	}{
		{`300`, 300},
		{`300.0`, 300},
		{`"300"`, 300},
		{`" 45 "`, 45},
		{`"soon"`, 0},
		{`-5`, 0},
		{`null`, 0},
		{`{"every": 300}`, 0},
	}
	for _, tc := range cases {
		var s Settings
		err := json.Unmarshal([]byte(`{"skills": ["go"], "check_interval": `+tc.in+`}`), &s)
		require.NoError(t, err, tc.in)
		assert.Equal(t, SkillSet{"go"}, s.Skills, tc.in)
		assert.Equal(t, tc.want, s.CheckInterval, tc.in)
	}
}

func TestSettingsUpdate_Marshal(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(SettingsUpdate{CheckInterval: 300})
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills": [], "check_interval": 300}`, string(b))

	b, err = json.Marshal(SettingsUpdate{Skills: SkillSet{"go"}, CheckInterval: 300})
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills": ["go"], "check_interval": 300}`, string(b))
}
