package history

import (
	"fmt"
	"time"

	"etltransfer/etl/core"
	"etltransfer/etl/shared"
)

//Service keeps bounded per job run history for status reporting
type Service interface {
	Register(job *core.Job, result *core.Result) *Run
	Show(request *ShowRequest) *ShowResponse
	Status(request *StatusRequest) *StatusResponse
}

type service struct {
	startTime time.Time
	registry  *registry
}

func (s *service) Register(job *core.Job, result *core.Result) *Run {
	run := NewRun(job, result)
	s.registry.register(run)
	return run
}

func (s *service) Show(request *ShowRequest) *ShowResponse {
	return &ShowResponse{Runs: s.registry.get(request.ID)}
}

func (s *service) Status(request *StatusRequest) *StatusResponse {
	response := NewStatusResponse()
	for ID, runs := range s.registry.list(request.RunCount) {
		for _, run := range runs {
			if run.Status == shared.StatusError {
				response.Error = run.Error
				response.Status.Status = run.Status
				response.Errors[run.ID] = run.Error
				continue
			}
			if response.LastRunTime == nil || response.LastRunTime.Before(run.EndTime) {
				endTime := run.EndTime
				response.LastRunTime = &endTime
			}
		}
		if runs[0].Status != shared.StatusError {
			response.Transferred[ID] = runs[0].RowsTransferred
		}
	}
	response.UpTime = fmt.Sprintf("%s", time.Now().Sub(s.startTime))
	return response
}

//New creates a history service
func New(config *shared.Config) Service {
	return &service{
		startTime: time.Now(),
		registry:  newRegistry(config.MaxHistory),
	}
}
