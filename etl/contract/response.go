package contract

import (
	"etltransfer/etl/core"
	"etltransfer/etl/shared"
)

//Response represents a transfer response
type Response struct {
	JobID  string
	Status string
	Error  string
	*core.Result
}

//SetError sets error message and returns true if err was not nil
func (r *Response) SetError(err error) bool {
	if err == nil {
		return false
	}
	r.Status = shared.StatusError
	r.Error = err.Error()
	return true
}

//NewResponse creates a response
func NewResponse(jobID string) *Response {
	return &Response{
		JobID:  jobID,
		Status: shared.StatusOk,
	}
}
