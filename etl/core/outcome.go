package core

import "time"

//Outcome represents the result of a single transferred unit, immutable once produced
type Outcome struct {
	Unit          string
	Segment       string
	Window        Window
	RowsProcessed int
	Success       bool
	TimeTaken     time.Duration
	Error         string
}

//SetError marks outcome failed and returns true if err was not nil
func (o *Outcome) SetError(err error) bool {
	if err == nil {
		return false
	}
	o.Success = false
	o.Error = err.Error()
	return true
}

//NewOutcome returns outcome for a unit started at supplied time
func NewOutcome(unit *Unit, started time.Time) *Outcome {
	result := &Outcome{
		Unit:      unit.ID(),
		Window:    unit.Window,
		Success:   true,
		TimeTaken: time.Now().Sub(started),
	}
	if unit.Segment != nil {
		result.Segment = unit.Segment.Name
	}
	return result
}
