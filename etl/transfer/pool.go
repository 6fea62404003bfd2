package transfer

import (
	"sync"

	"etltransfer/etl/core"
)

//units runs transfer units over a bounded worker pool. The channel acts
//as a throttle: a send blocks once workers goroutines are in flight.
type units struct {
	data    []*core.Unit
	channel chan bool
	*sync.WaitGroup
}

//Range dispatches every unit to handler, at most pool size at a time,
//and blocks until all complete. Handlers report through outcomes, so a
//failed unit never stops the remaining ones.
func (u *units) Range(handler func(unit *core.Unit)) {
	for i := range u.data {
		unit := u.data[i]
		u.Add(1)
		u.channel <- true
		go func(unit *core.Unit) {
			defer u.Done()
			handler(unit)
			<-u.channel
		}(unit)
	}
	u.Wait()
}

func newUnits(data []*core.Unit, workers int) *units {
	if workers <= 0 {
		workers = 1
	}
	return &units{
		data:      data,
		channel:   make(chan bool, workers),
		WaitGroup: &sync.WaitGroup{},
	}
}
