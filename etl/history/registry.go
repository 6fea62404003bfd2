package history

import (
	"sync"
)

//registry keeps up to maxHistory most recent runs per job ID, newest first
type registry struct {
	maxHistory int
	runs       map[string][]*Run
	mux        *sync.Mutex
}

func (r *registry) get(ID string) []*Run {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.runs[ID]
}

func (r *registry) list(max int) map[string][]*Run {
	r.mux.Lock()
	defer r.mux.Unlock()
	if max <= 0 {
		max = 1
	}
	result := make(map[string][]*Run)
	for ID := range r.runs {
		if len(r.runs[ID]) > max {
			result[ID] = r.runs[ID][:max]
			continue
		}
		result[ID] = r.runs[ID]
	}
	return result
}

func (r *registry) register(run *Run) {
	r.mux.Lock()
	defer r.mux.Unlock()
	history := r.runs[run.ID]
	if len(history)+1 > r.maxHistory {
		history = history[:r.maxHistory-1]
	}
	r.runs[run.ID] = append([]*Run{run}, history...)
}

func newRegistry(maxHistory int) *registry {
	if maxHistory <= 0 {
		maxHistory = 1
	}
	return &registry{
		maxHistory: maxHistory,
		runs:       make(map[string][]*Run),
		mux:        &sync.Mutex{},
	}
}
