package transfer

import (
	"sync/atomic"
	"testing"

	"etltransfer/etl/core"

	"github.com/stretchr/testify/assert"
)

func TestUnits_Range(t *testing.T) {
	var work = make([]*core.Unit, 0)
	for i := 0; i < 20; i++ {
		work = append(work, &core.Unit{Batch: i + 1})
	}
	var processed, inFlight, maxInFlight int32
	pool := newUnits(work, 4)
	pool.Range(func(unit *core.Unit) {
		current := atomic.AddInt32(&inFlight, 1)
		for {
			max := atomic.LoadInt32(&maxInFlight)
			if current <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, current) {
				break
			}
		}
		atomic.AddInt32(&processed, 1)
		atomic.AddInt32(&inFlight, -1)
	})
	assert.Equal(t, int32(20), atomic.LoadInt32(&processed))
	assert.True(t, atomic.LoadInt32(&maxInFlight) <= 4)
}

func TestUnits_RangeSingleWorkerFallback(t *testing.T) {
	var processed int32
	pool := newUnits([]*core.Unit{{Batch: 1}, {Batch: 2}}, 0)
	pool.Range(func(unit *core.Unit) {
		atomic.AddInt32(&processed, 1)
	})
	assert.Equal(t, int32(2), atomic.LoadInt32(&processed))
}
