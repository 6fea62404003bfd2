package history

import (
	"time"

	"etltransfer/etl/core"
)

//Run represents one completed transfer, the durable record kept per job ID
type Run struct {
	ID          string `json:",omitempty"`
	Status      string
	Error       string `json:",omitempty"`
	EndTime     time.Time
	TimeTakenMs int

	RowsTransferred   int
	TargetRows        int
	TransferRate      float64
	BatchesProcessed  int
	BatchesFailed     int
	SegmentsProcessed int
	SegmentsFailed    int
	Warnings          []string `json:",omitempty"`
}

//NewRun builds a run record from a completed job and its result
func NewRun(job *core.Job, result *core.Result) *Run {
	run := &Run{
		ID:     job.ID,
		Status: job.Status,
		Error:  job.Error,
	}
	if job.EndTime != nil {
		run.EndTime = *job.EndTime
		run.TimeTakenMs = int(job.EndTime.Sub(job.StartTime) / time.Millisecond)
	}
	if result != nil {
		run.RowsTransferred = result.RowsTransferred
		run.TargetRows = result.TargetRows
		run.TransferRate = result.TransferRate
		run.BatchesProcessed = result.BatchesProcessed
		run.BatchesFailed = result.BatchesFailed
		run.SegmentsProcessed = result.SegmentsProcessed
		run.SegmentsFailed = result.SegmentsFailed
		run.Warnings = result.Warnings
	}
	return run
}
