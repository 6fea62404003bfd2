package core

import "sync"

//Collector aggregates unit outcomes produced by concurrent workers.
//It is exclusively owned by the orchestrator; workers only contribute
//through Collect, which serializes under the mutex.
type Collector struct {
	mutex     *sync.Mutex
	outcomes  []*Outcome
	rows      int
	succeeded int
	failed    int
}

//Collect adds an outcome
func (c *Collector) Collect(outcome *Outcome) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.outcomes = append(c.outcomes, outcome)
	if outcome.Success {
		c.rows += outcome.RowsProcessed
		c.succeeded++
		return
	}
	c.failed++
}

//Rows returns rows contributed by successful units only
func (c *Collector) Rows() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.rows
}

//Succeeded returns successful unit count
func (c *Collector) Succeeded() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.succeeded
}

//Failed returns failed unit count
func (c *Collector) Failed() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.failed
}

//Outcomes returns collected outcomes
func (c *Collector) Outcomes() []*Outcome {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	result := make([]*Outcome, len(c.outcomes))
	copy(result, c.outcomes)
	return result
}

//Errors returns error details of failed units
func (c *Collector) Errors() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var result = make([]string, 0)
	for _, outcome := range c.outcomes {
		if !outcome.Success {
			result = append(result, outcome.Error)
		}
	}
	return result
}

//NewCollector creates a collector
func NewCollector() *Collector {
	return &Collector{
		mutex:    &sync.Mutex{},
		outcomes: make([]*Outcome, 0),
	}
}
