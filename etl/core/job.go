package core

import (
	"etltransfer/etl/shared"
	"sync"
	"time"
)

//Job represents a running transfer job
type Job struct {
	ID        string
	Error     string
	Status    string
	Outcomes  []*Outcome
	mutex     *sync.Mutex
	StartTime time.Time
	EndTime   *time.Time
}

//Done marks job completed
func (j *Job) Done(now time.Time) {
	j.Status = shared.StatusDone
	j.EndTime = &now
}

//Add records a unit outcome
func (j *Job) Add(outcome *Outcome) {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	j.Outcomes = append(j.Outcomes, outcome)
}

//Progress returns processed unit count
func (j *Job) Progress() int {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return len(j.Outcomes)
}

//IsRunning returns true if job has running status
func (j *Job) IsRunning() bool {
	return j.Status == shared.StatusRunning
}

//SetError sets job error state
func (j *Job) SetError(err error) {
	if err == nil {
		return
	}
	j.Error = err.Error()
	j.Status = shared.StatusError
}

//NewJob creates a new job
func NewJob(id string) *Job {
	return &Job{
		ID:        id,
		Status:    shared.StatusRunning,
		StartTime: time.Now(),
		mutex:     &sync.Mutex{},
		Outcomes:  make([]*Outcome, 0),
	}
}
