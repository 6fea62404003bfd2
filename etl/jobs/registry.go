package jobs

import (
	"sort"
	"sync"
	"time"

	"etltransfer/etl/core"
)

var pruneThreshold = time.Minute

//registry holds in flight and recently completed jobs
type registry struct {
	jobs  map[string]*core.Job
	mutex *sync.RWMutex
}

func (r *registry) get(ID string) *core.Job {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.jobs[ID]
}

//list returns jobs ordered by start time
func (r *registry) list() []*core.Job {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var result = make([]*core.Job, 0)
	for _, job := range r.jobs {
		result = append(result, job)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

//prune drops completed jobs older than the retention threshold
func (r *registry) prune(now time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for ID, job := range r.jobs {
		if job.IsRunning() || job.EndTime == nil {
			continue
		}
		if now.Sub(*job.EndTime) > pruneThreshold {
			delete(r.jobs, ID)
		}
	}
}

func (r *registry) add(job *core.Job) {
	r.prune(time.Now())
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.jobs[job.ID] = job
}

func newRegistry() *registry {
	return &registry{
		jobs:  make(map[string]*core.Job),
		mutex: &sync.RWMutex{},
	}
}
