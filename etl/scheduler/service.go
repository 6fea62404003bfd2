package scheduler

import (
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"etltransfer/etl/shared"

	"github.com/viant/toolbox"
	"github.com/viant/toolbox/storage"
	"github.com/viant/toolbox/url"
)

var defaultLoadFrequencyMs = 5000
var dateLayout = "2006-01-02 15:04:05"

//Service watches a location with transfer request documents and runs
//each on its own schedule
type Service interface {
	//List returns scheduled transfers
	List(request *ListRequest) *ListResponse
	//Get returns scheduled transfer by ID
	Get(ID string) *Schedulable
}

//Runner runs a due schedulable
type Runner func(schedulable *Schedulable) error

type service struct {
	config          *shared.Config
	refreshDuration time.Duration
	checkFrequency  time.Duration
	schedules       map[string]*Schedulable
	modified        map[string]time.Time
	mutex           *sync.Mutex
	nextCheck       time.Time
	runner          Runner
}

func (s *service) add(schedulable *Schedulable, modTime time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, has := s.schedules[schedulable.ID]; has {
		log.Printf("updated schedule: %v\n", schedulable.ID)
	} else {
		log.Printf("added schedule: %v\n", schedulable.ID)
	}
	s.schedules[schedulable.ID] = schedulable
	s.modified[schedulable.ID] = modTime
}

func (s *service) List(request *ListRequest) *ListResponse {
	return &ListResponse{Items: s.schedulables()}
}

func (s *service) Get(ID string) *Schedulable {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.schedules[ID]
}

func (s *service) listIDs() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var result = make([]string, 0)
	for ID := range s.schedules {
		result = append(result, ID)
	}
	return result
}

func (s *service) hasChanged(ID string, modTime time.Time) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	previous, ok := s.modified[ID]
	if !ok {
		return true
	}
	return !previous.Equal(modTime)
}

func (s *service) remove(ID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.schedules, ID)
}

func (s *service) schedulables() []*Schedulable {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var result = make([]*Schedulable, 0)
	for _, candidate := range s.schedules {
		result = append(result, candidate)
	}
	return result
}

func (s *service) dueToRun() []*Schedulable {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var result = make([]*Schedulable, 0)
	now := time.Now()
	for _, candidate := range s.schedules {
		if candidate.IsRunning() {
			continue
		}
		if candidate.Schedule.IsDue(now) {
			result = append(result, candidate)
		}
	}
	return result
}

func (s *service) run() {
	for {
		_ = s.load()
		dueToRun := s.dueToRun()
		if len(dueToRun) == 0 {
			time.Sleep(s.checkFrequency)
			continue
		}
		now := time.Now()
		for i := range dueToRun {
			schedulable := dueToRun[i]
			if !schedulable.Begin() {
				continue
			}
			schedulable.ScheduleNextRun(now)
			go func(schedulable *Schedulable) {
				defer schedulable.Done()
				runnable := schedulable.Clone()
				if err := s.runner(runnable); err != nil {
					schedulable.Schedule.ErrorCount++
					log.Printf("failed to run %v: %v", schedulable.ID, err)
					//back off failing schedules progressively, up to 4 minutes
					schedulable.ScheduleNextRun(time.Now().Add(time.Minute * time.Duration(schedulable.Schedule.ErrorCount%5)))
				} else {
					schedulable.Schedule.RunCount++
				}
				log.Printf("[%v] next run at: %v\n", schedulable.ID, schedulable.Schedule.NextRun.Format(dateLayout))
			}(schedulable)
		}
		time.Sleep(s.checkFrequency)
	}
}

func (s *service) load() error {
	if !time.Now().After(s.nextCheck) {
		return nil
	}
	s.nextCheck = time.Now().Add(s.refreshDuration)
	resource := url.NewResource(s.config.ScheduleURL)
	storageService, err := storage.NewServiceForURL(resource.URL, "")
	if err != nil {
		return err
	}
	var ids = make(map[string]bool)
	if err = s.loadFromURL(storageService, resource.URL, ids); err != nil {
		return err
	}
	s.removeUnknown(ids)
	return nil
}

func (s *service) loadFromURL(storageService storage.Service, URL string, ids map[string]bool) error {
	objects, err := storageService.List(URL)
	if err != nil {
		return err
	}
	for i := range objects {
		object := objects[i]
		if strings.Trim(URL, "/") == strings.Trim(object.URL(), "/") {
			continue
		}
		if object.IsFolder() {
			if err = s.loadFromURL(storageService, object.URL(), ids); err != nil {
				return err
			}
			continue
		}
		fileInfo := object.FileInfo()
		ext := path.Ext(fileInfo.Name())
		if ext != ".json" && ext != ".yaml" {
			continue
		}
		schedulable, err := NewSchedulableFromURL(object.URL())
		if err != nil {
			return err
		}
		schedulable.URL = object.URL()
		if err = schedulable.Init(); err == nil {
			err = schedulable.Validate()
		}
		if err != nil {
			log.Printf("skipped %v: %v\n", object.URL(), err)
			continue
		}
		ids[schedulable.ID] = true
		if !s.hasChanged(schedulable.ID, fileInfo.ModTime()) {
			continue
		}
		s.add(schedulable, fileInfo.ModTime())
	}
	return nil
}

func (s *service) removeUnknown(known map[string]bool) {
	for _, ID := range s.listIDs() {
		if !known[ID] {
			log.Printf("removed schedule: %v\n", ID)
			s.remove(ID)
		}
	}
}

//New creates a scheduler watching config.ScheduleURL
func New(config *shared.Config, runner Runner) (Service, error) {
	result := &service{
		runner:          runner,
		config:          config,
		schedules:       make(map[string]*Schedulable),
		modified:        make(map[string]time.Time),
		mutex:           &sync.Mutex{},
		nextCheck:       time.Now().Add(-time.Second),
		checkFrequency:  time.Millisecond * time.Duration(config.ScheduleCheckFreqMs),
		refreshDuration: time.Millisecond * time.Duration(defaultLoadFrequencyMs),
	}
	if result.checkFrequency <= 0 {
		result.checkFrequency = time.Second
	}
	if config.ScheduleURL == "" {
		return result, nil
	}
	resource := url.NewResource(config.ScheduleURL)
	if !toolbox.FileExists(resource.ParsedURL.Path) {
		if err := toolbox.CreateDirIfNotExist(resource.ParsedURL.Path); err != nil {
			return nil, err
		}
	}
	var err error
	if err = result.load(); err == nil {
		go result.run()
	}
	return result, err
}
