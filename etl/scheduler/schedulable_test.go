package scheduler

import (
	"testing"
	"time"

	"etltransfer/etl/contract"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dsc"
	"github.com/viant/toolbox"
)

func newTestSchedulable() *Schedulable {
	return &Schedulable{
		URL: "file:///opt/etl/schedules/db1/orders.yaml",
		Request: &contract.Request{
			Source: &contract.Resource{
				Config: &dsc.Config{DriverName: "postgres", Descriptor: "host=localhost dbname=src"},
				Table:  "orders",
			},
			Dest: &contract.Resource{
				Config: &dsc.Config{DriverName: "postgres", Descriptor: "host=localhost dbname=dst"},
			},
			Schedule: &contract.Schedule{
				Frequency: &toolbox.Duration{Value: 1, Unit: "min"},
			},
		},
	}
}

func TestSchedulable_Init(t *testing.T) {
	schedulable := newTestSchedulable()
	err := schedulable.Init()
	assert.Nil(t, err)
	assert.Equal(t, "schedules:db1:orders.yaml", schedulable.ID)
	assert.NotNil(t, schedulable.Schedule.NextRun)
	assert.Nil(t, schedulable.Validate())
}

func TestSchedulable_ValidateFailures(t *testing.T) {
	schedulable := newTestSchedulable()
	schedulable.Schedule = nil
	assert.NotNil(t, schedulable.Validate())

	schedulable = newTestSchedulable()
	schedulable.Request.Schedule = &contract.Schedule{}
	assert.NotNil(t, schedulable.Validate())
}

func TestSchedulable_RunState(t *testing.T) {
	schedulable := newTestSchedulable()
	assert.False(t, schedulable.IsRunning())
	assert.True(t, schedulable.Begin())
	assert.True(t, schedulable.IsRunning())
	assert.False(t, schedulable.Begin(), "already running")
	schedulable.Done()
	assert.False(t, schedulable.IsRunning())
}

func TestSchedulable_Clone(t *testing.T) {
	schedulable := newTestSchedulable()
	assert.Nil(t, schedulable.Init())
	clone := schedulable.Clone()
	assert.Equal(t, schedulable.ID, clone.ID)
	assert.False(t, clone.IsRunning())

	schedulable.ScheduleNextRun(time.Now().Add(time.Hour))
	assert.NotNil(t, schedulable.Schedule.NextRun)
}
