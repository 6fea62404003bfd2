package core

import "time"

//Result represents final transfer report, one per job invocation
type Result struct {
	Success         bool
	RowsTransferred int
	TargetRows      int
	TimeTakenMs     int
	//TransferRate derived throughput in rows per second
	TransferRate      float64
	BatchesProcessed  int
	BatchesFailed     int
	SegmentsProcessed int
	SegmentsFailed    int
	Warnings          []string
	Error             string
}

//SetError sets error and returns true if err was not nil
func (r *Result) SetError(err error) bool {
	if err == nil {
		return false
	}
	r.Success = false
	r.Error = err.Error()
	return true
}

//AddWarning appends a consistency warning
func (r *Result) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

//SetTimeTaken computes duration and derived throughput
func (r *Result) SetTimeTaken(started time.Time) {
	elapsed := time.Now().Sub(started)
	r.TimeTakenMs = int(elapsed / time.Millisecond)
	if seconds := elapsed.Seconds(); seconds > 0 {
		r.TransferRate = float64(r.RowsTransferred) / seconds
	}
}

//NewResult creates a result
func NewResult() *Result {
	return &Result{
		Success:  true,
		Warnings: make([]string, 0),
	}
}
