package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Job is a posting produced by the remote monitor. The dashboard never edits it.
type Job struct {
	ID          JobID     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PostedDate  Timestamp `json:"posted_date"`
}

// JobID is opaque; the monitor may send it as a string or a number.
type JobID string

func (id *JobID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = JobID(n.String())
	return nil
}

// Timestamp decodes the monitor's posted_date leniently. Raw keeps the
// original text so the page can still show something when parsing fails.
type Timestamp struct {
	Time time.Time
	Raw  string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// Unix seconds outside years 1..9999 are kept only as Raw.
const (
	minUnix = -62135596800
	maxUnix = 253402300799
)

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		// unix seconds
		raw := string(b)
		*t = Timestamp{Raw: raw}
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= minUnix && f <= maxUnix {
			sec := int64(f)
			t.Time = time.Unix(sec, int64((f-float64(sec))*1e9)).UTC()
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// ParseTimestamp never fails; an unknown layout yields a zero Time.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	ts := Timestamp{Raw: s}
	if s == "" {
		return ts
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			ts.Time = parsed
			return ts
		}
	}
	return ts
}

// Settings is the monitor's GET /settings payload. Unknown fields are ignored.
type Settings struct {
	Skills        SkillSet `json:"skills"`
	CheckInterval Seconds  `json:"check_interval,omitempty"`
}

// Seconds is a display-only interval reported by the monitor. Floats are
// truncated, numeric strings are accepted and anything else decodes as 0, so
// an odd value never fails the whole settings load.
type Seconds int

func (s *Seconds) UnmarshalJSON(b []byte) error {
	*s = 0
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		b = []byte(strings.TrimSpace(str))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > math.MaxInt32 {
		return nil
	}
	*s = Seconds(f)
	return nil
}

// SettingsUpdate is the POST /settings body.
type SettingsUpdate struct {
	Skills        SkillSet `json:"skills"`
	CheckInterval int      `json:"check_interval"`
}

func (u SettingsUpdate) MarshalJSON() ([]byte, error) {
	type alias SettingsUpdate
	a := alias(u)
	if a.Skills == nil {
		// the monitor expects a list, never null
		a.Skills = SkillSet{}
	}
	return json.Marshal(a)
}
