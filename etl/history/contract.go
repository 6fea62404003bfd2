package history

import (
	"time"

	"etltransfer/etl/shared"
)

//ShowRequest represents a run history request for one job ID
type ShowRequest struct {
	ID string
}

//ShowResponse represents run history, newest first
type ShowResponse struct {
	Runs []*Run
}

//StatusRequest represents a service wide status request
type StatusRequest struct {
	//RunCount how many recent runs per job to inspect
	RunCount int
}

//Status represents aggregated service status
type Status struct {
	Status      string
	Error       string `json:",omitempty"`
	Errors      map[string]string
	Transferred map[string]int
	LastRunTime *time.Time
	UpTime      string
}

//StatusResponse represents a status response
type StatusResponse struct {
	*Status
}

//NewStatusResponse creates a status response
func NewStatusResponse() *StatusResponse {
	return &StatusResponse{
		Status: &Status{
			Status:      shared.StatusOk,
			Errors:      make(map[string]string),
			Transferred: make(map[string]int),
		},
	}
}
