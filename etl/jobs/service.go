package jobs

import "etltransfer/etl/core"

//Service tracks transfer jobs while they run
type Service interface {
	List(request *ListRequest) *ListResponse
	Create(ID string) *core.Job
	Get(ID string) *core.Job
}

type service struct {
	registry *registry
}

//Get returns job for supplied ID, or nil if unknown
func (s *service) Get(ID string) *core.Job {
	return s.registry.get(ID)
}

func (s *service) List(request *ListRequest) *ListResponse {
	jobs := s.registry.list()
	if len(request.IDs) == 0 {
		return &ListResponse{Jobs: jobs}
	}
	var requested = make(map[string]bool)
	for _, ID := range request.IDs {
		requested[ID] = true
	}
	var filtered = make([]*core.Job, 0)
	for i := range jobs {
		if requested[jobs[i].ID] {
			filtered = append(filtered, jobs[i])
		}
	}
	return &ListResponse{Jobs: filtered}
}

func (s *service) Create(ID string) *core.Job {
	job := core.NewJob(ID)
	s.registry.add(job)
	return job
}

//New creates a jobs service
func New() Service {
	return &service{registry: newRegistry()}
}
