package jobs

import (
	"testing"
	"time"

	"etltransfer/etl/core"

	"github.com/stretchr/testify/assert"
)

func TestService_CreateAndGet(t *testing.T) {
	service := New()
	job := service.Create("db1:orders")
	assert.NotNil(t, job)
	assert.True(t, job.IsRunning())

	assert.Equal(t, job, service.Get("db1:orders"))
	assert.Nil(t, service.Get("unknown"))
}

func TestService_List(t *testing.T) {
	service := New()
	service.Create("db1:orders")
	service.Create("db1:events")

	response := service.List(&ListRequest{})
	assert.Equal(t, 2, len(response.Jobs))

	response = service.List(&ListRequest{IDs: []string{"db1:events"}})
	assert.Equal(t, 1, len(response.Jobs))
	assert.Equal(t, "db1:events", response.Jobs[0].ID)

	response = service.List(&ListRequest{IDs: []string{"unknown"}})
	assert.Equal(t, 0, len(response.Jobs))
}

func TestRegistry_Prune(t *testing.T) {
	registry := newRegistry()

	stale := core.NewJob("db1:orders")
	stale.Done(time.Now().Add(-2 * time.Minute))
	registry.jobs[stale.ID] = stale

	recent := core.NewJob("db1:events")
	recent.Done(time.Now())
	registry.jobs[recent.ID] = recent

	running := core.NewJob("db1:items")
	registry.jobs[running.ID] = running

	registry.prune(time.Now())
	assert.Nil(t, registry.get("db1:orders"))
	assert.NotNil(t, registry.get("db1:events"))
	assert.NotNil(t, registry.get("db1:items"))
}
