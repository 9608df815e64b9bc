package logger

import (
	"encoding/json"
	"sort"
)

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{
		Failures: NewPathCounter("script", "command", "error"),
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries"`

	Runs          int `json:"runs"`
	SucceededRuns int `json:"succeeded_runs"`
	FailedRuns    int `json:"failed_runs"`

	// Number of runs started per script path.
	Scripts StrCounter `json:"scripts"`
	// Number of successful executions per directive name.
	Directives StrCounter `json:"directives"`
	// Failed directives grouped by script, command and message.
	Failures *PathCounter `json:"failures"`
}

func (r *Report) Update(ev *Event) {
	r.LogEntries++

	switch ev.Event {
	case EventScriptStarted:
		r.Scripts.Increment(ev.Script)
	case EventDirectiveExecuted:
		r.Directives.Increment(ev.Command)
	case EventDirectiveFailed:
		r.Failures.Increment(ev.Script, ev.Command, ev.Error)
	case EventScriptFinished:
		r.Runs++
		if ev.Error == "" {
			r.SucceededRuns++
		} else {
			r.FailedRuns++
		}
	default:
		r.InvalidEntries.Increment(ev.Event)
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of distinct tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
