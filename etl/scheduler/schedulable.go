package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"etltransfer/etl/contract"

	"github.com/viant/toolbox/url"
)

const (
	statusScheduled = iota
	statusRunning
)

//Schedulable represents a transfer request runnable on a schedule
type Schedulable struct {
	URL string
	ID  string
	*contract.Request
	status uint32
}

//Begin marks schedulable running, returning false if it already was
func (s *Schedulable) Begin() bool {
	return atomic.CompareAndSwapUint32(&s.status, statusScheduled, statusRunning)
}

//Done marks schedulable no longer running
func (s *Schedulable) Done() {
	atomic.StoreUint32(&s.status, statusScheduled)
}

//IsRunning returns true if schedulable is running
func (s *Schedulable) IsRunning() bool {
	return atomic.LoadUint32(&s.status) == statusRunning
}

//ScheduleNextRun schedules next run after supplied base time
func (s *Schedulable) ScheduleNextRun(baseTime time.Time) {
	s.Schedule.Next(baseTime)
}

//Clone returns a copy safe to hand to a runner while this one gets rescheduled
func (s *Schedulable) Clone() *Schedulable {
	request := *s.Request
	return &Schedulable{
		URL:     s.URL,
		ID:      s.ID,
		Request: &request,
	}
}

//Init assigns identity and the first run time
func (s *Schedulable) Init() error {
	if s.ID == "" {
		s.ID = urlToID(s.URL)
	}
	if s.Request == nil || s.Schedule == nil {
		return nil
	}
	now := time.Now()
	if s.Schedule.Frequency != nil {
		s.Schedule.NextRun = &now
	} else {
		s.Schedule.Next(now)
	}
	return s.Request.Init()
}

//Validate checks if schedulable is valid
func (s *Schedulable) Validate() error {
	if s.Request == nil {
		return fmt.Errorf("request was empty")
	}
	if s.Schedule == nil {
		return fmt.Errorf("schedule was empty")
	}
	if err := s.Schedule.Validate(); err != nil {
		return err
	}
	return s.Request.Validate()
}

//NewSchedulableFromURL creates a new schedulable from URL
func NewSchedulableFromURL(URL string) (*Schedulable, error) {
	result := &Schedulable{}
	resource := url.NewResource(URL)
	err := resource.Decode(result)
	return result, err
}
