package jobs

import (
	"etltransfer/etl/core"
)

//ListRequest represents a job list request; empty IDs selects all
type ListRequest struct {
	IDs []string
}

//ListResponse represents a job list response
type ListResponse struct {
	Jobs []*core.Job
}
