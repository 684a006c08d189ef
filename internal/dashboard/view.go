package dashboard

import (
	"strings"
	"time"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

const EmptyMessage = "No jobs found"

type JobView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Posted      string     `json:"posted"`
}

// View is what the page renders. Per-source errors are merged here and
// nowhere else, so a jobs failure never hides a settings failure.
type View struct {
	Status        Status     `json:"status"`
	Loading       bool       `json:"loading"`
	Jobs          []JobView  `json:"jobs"`
	Skills        []string   `json:"skills"`
	Errors        []string   `json:"errors"`
	Error         string     `json:"error,omitempty"`
	JobsError     string     `json:"jobs_error,omitempty"`
	SettingsError string     `json:"settings_error,omitempty"`
	Message       string     `json:"message,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	CheckInterval int        `json:"check_interval,omitempty"`
}

const postedLayout = "Jan 2, 2006, 3:04 PM"

func BuildView(s State) View {
	v := View{
		Loading:       s.Loading,
		Jobs:          make([]JobView, 0, len(s.Jobs)),
		Skills:        append([]string{}, s.Skills...),
		Errors:        []string{},
		JobsError:     s.JobsError,
		SettingsError: s.SettingsError,
		CheckInterval: s.ServerCheckInterval,
	}

	for _, e := range []string{s.JobsError, s.SettingsError} {
		if e != "" {
			v.Errors = append(v.Errors, e)
		}
	}
	v.Error = strings.Join(v.Errors, "; ")

	if !s.JobsUpdatedAt.IsZero() {
		t := s.JobsUpdatedAt
		v.UpdatedAt = &t
	}

	for _, j := range s.Jobs {
		jv := JobView{
			ID:          string(j.ID),
			Title:       j.Title,
			Description: PlainText(j.Description),
			URL:         j.URL,
			Posted:      j.PostedDate.Raw,
		}
		if !j.PostedDate.Time.IsZero() {
			t := j.PostedDate.Time
			jv.PostedAt = &t
			jv.Posted = t.Local().Format(postedLayout)
		}
		v.Jobs = append(v.Jobs, jv)
	}

	switch {
	case s.Loading:
		v.Status = StatusLoading
	case len(s.Jobs) == 0 && s.JobsError != "":
		v.Status = StatusError
	case len(s.Jobs) == 0:
		v.Status = StatusEmpty
		v.Message = EmptyMessage
	default:
		v.Status = StatusReady
	}
	return v
}
