package view

import (
	"fmt"

	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
)

// Status is the lifecycle of one dataset inside a mounted view.
//
//	idle -> loading -> ready
//	             \---> failed
//
// ready and failed are terminal while the view stays mounted.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Dataset is one keyed result set. Rows is empty unless Status is ready.
type Dataset struct {
	Key    enum.DatasetKey
	Status Status
	Rows   []entity.Row
	Err    string
}

// Snapshot is a copy of a view's state, safe to read without locking.
type Snapshot struct {
	Kind     enum.ViewKind
	Datasets []Dataset
	// Banner accumulates one line per failed fetch.
	Banner string
	// Failed is set when a critical dataset could not be loaded; the view
	// shows only the error.
	Failed bool
	Tab    Tab
}

// Dataset returns the dataset stored under key.
func (s Snapshot) Dataset(key enum.DatasetKey) (Dataset, bool) {
	for _, d := range s.Datasets {
		if d.Key == key {
			return d, true
		}
	}
	return Dataset{}, false
}

// Loading reports whether any dataset is still in flight.
func (s Snapshot) Loading() bool {
	for _, d := range s.Datasets {
		if d.Status == StatusLoading {
			return true
		}
	}
	return false
}
