package etl

import (
	"fmt"
	"time"

	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/dao"
	"etltransfer/etl/history"
	"etltransfer/etl/jobs"
	"etltransfer/etl/scheduler"
	"etltransfer/etl/shared"
	"etltransfer/etl/transfer"
)

//Service is the transfer entry point: one call moves one table and
//returns a complete report. Scheduled transfers go through the same path.
type Service interface {
	//Transfer runs a table transfer for supplied request
	Transfer(request *contract.Request) *contract.Response

	//Jobs returns the job tracking service
	Jobs() jobs.Service

	//History returns the run history service
	History() history.Service

	//Scheduler returns the schedule watcher
	Scheduler() scheduler.Service
}

type service struct {
	config    *shared.Config
	jobs      jobs.Service
	history   history.Service
	scheduler scheduler.Service
}

func (s *service) Transfer(request *contract.Request) *contract.Response {
	response := contract.NewResponse(request.ID())
	if err := request.Init(); response.SetError(err) {
		return response
	}
	if err := request.Validate(); response.SetError(err) {
		return response
	}
	response.JobID = request.ID()
	ctx := shared.NewContext(request.ID(), request.Debug || s.config.Debug)

	daoService := dao.New(request.Source, request.Dest)
	if err := daoService.Init(ctx); response.SetError(err) {
		return response
	}
	defer func() {
		if err := daoService.Close(); err != nil {
			ctx.Log(fmt.Sprintf("failed to close datastores: %v", err))
		}
	}()

	job := s.jobs.Create(request.ID())
	result := transfer.New(daoService).Transfer(ctx, request, job)
	s.complete(job, result)
	response.Result = result
	if result.Error != "" {
		response.Status = shared.StatusError
		response.Error = result.Error
	}
	return response
}

func (s *service) complete(job *core.Job, result *core.Result) {
	job.Done(time.Now())
	if !result.Success {
		job.SetError(fmt.Errorf("%s", result.Error))
	}
	s.history.Register(job, result)
}

func (s *service) Jobs() jobs.Service {
	return s.jobs
}

func (s *service) History() history.Service {
	return s.history
}

func (s *service) Scheduler() scheduler.Service {
	return s.scheduler
}

//New creates a transfer service; with config.ScheduleURL set it also
//starts the schedule watcher
func New(config *shared.Config) (Service, error) {
	config.Init()
	result := &service{
		config:  config,
		jobs:    jobs.New(),
		history: history.New(config),
	}
	var err error
	result.scheduler, err = scheduler.New(config, func(schedulable *scheduler.Schedulable) error {
		response := result.Transfer(schedulable.Request)
		if response.Error != "" {
			return fmt.Errorf("%s", response.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
