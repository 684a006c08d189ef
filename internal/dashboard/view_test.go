package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmonitor/internal/domain"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>Build <b>APIs</b></p><p>in Go</p>", "Build APIs in Go"},
		{"line one<br>line two", "line one line two"},
		{"Fish &amp; chips", "Fish & chips"},
		{"<ul><li>a</li><li>b</li></ul>", "a b"},
		{"<style>p{}</style>Hello<script>x()</script>", "Hello"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PlainText(tc.in), tc.in)
	}
}

func TestBuildView_Ready(t *testing.T) {
	t.Parallel()

	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	v := BuildView(State{
		Jobs: []domain.Job{
			{ID: "1", Title: "Go", Description: "<i>hi</i>", URL: "https://x/1", PostedDate: domain.ParseTimestamp("2024-03-01T10:15:00Z")},
			{ID: "2", Title: "Bad date", PostedDate: domain.ParseTimestamp("someday")},
		},
		Skills:              domain.SkillSet{"go"},
		JobsUpdatedAt:       updated,
		ServerCheckInterval: 300,
	})

	assert.Equal(t, StatusReady, v.Status)
	assert.Empty(t, v.Message)
	require.Len(t, v.Jobs, 2)

	assert.Equal(t, "hi", v.Jobs[0].Description)
	require.NotNil(t, v.Jobs[0].PostedAt)
	assert.Contains(t, v.Jobs[0].Posted, "2024")

	assert.Nil(t, v.Jobs[1].PostedAt)
	assert.Equal(t, "someday", v.Jobs[1].Posted, "raw value shown when unparseable")

	assert.Equal(t, []string{"go"}, v.Skills)
	require.NotNil(t, v.UpdatedAt)
	assert.Equal(t, updated, *v.UpdatedAt)
	assert.Equal(t, 300, v.CheckInterval)
}

func TestBuildView_StatusPrecedence(t *testing.T) {
	t.Parallel()

	jobs := []domain.Job{{ID: "1"}}

	assert.Equal(t, StatusLoading, BuildView(State{Loading: true, JobsError: JobsErrorMessage}).Status)
	assert.Equal(t, StatusError, BuildView(State{JobsError: JobsErrorMessage}).Status)
	assert.Equal(t, StatusEmpty, BuildView(State{SettingsError: SettingsErrorMessage}).Status,
		"a settings failure alone does not hide the empty message")
	assert.Equal(t, StatusReady, BuildView(State{Jobs: jobs, JobsError: JobsErrorMessage}).Status)
}

func TestBuildView_NeverNilSlices(t *testing.T) {
	t.Parallel()

	v := BuildView(State{})
	assert.NotNil(t, v.Jobs)
	assert.NotNil(t, v.Skills)
	assert.NotNil(t, v.Errors)
}
