package contract

import (
	"testing"

	"etltransfer/etl/shared"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dsc"
)

func newTestRequest() *Request {
	return &Request{
		Source: &Resource{
			Config: &dsc.Config{DriverName: "postgres", Descriptor: "host=localhost dbname=src"},
			Table:  "orders",
			Schema: "public",
		},
		Dest: &Resource{
			Config: &dsc.Config{DriverName: "postgres", Descriptor: "host=localhost dbname=dst"},
			Schema: "etl",
		},
	}
}

func TestRequest_Init(t *testing.T) {
	request := newTestRequest()
	err := request.Init()
	assert.Nil(t, err)
	assert.Equal(t, shared.ModeDirect, request.Mode)
	assert.Equal(t, shared.DefaultBatchSize, request.BatchSize)
	assert.Equal(t, shared.DefaultWorkers, request.Workers)
	assert.Equal(t, shared.DefaultSplits, request.Splits)
	assert.Equal(t, shared.DefaultInternalSchema, request.InternalSchema)
	assert.Equal(t, "orders", request.Dest.Table)
}

func TestRequest_Validate(t *testing.T) {
	var useCases = []struct {
		description string
		mutate      func(request *Request)
		hasError    bool
	}{
		{
			description: "valid request",
		},
		{
			description: "missing source",
			mutate:      func(request *Request) { request.Source = nil },
			hasError:    true,
		},
		{
			description: "missing dest config",
			mutate:      func(request *Request) { request.Dest.Config = nil },
			hasError:    true,
		},
		{
			description: "missing source table",
			mutate:      func(request *Request) { request.Source.Table = "" },
			hasError:    true,
		},
		{
			description: "invalid batch size",
			mutate:      func(request *Request) { request.BatchSize = -1 },
			hasError:    true,
		},
		{
			description: "invalid workers",
			mutate:      func(request *Request) { request.Workers = -2 },
			hasError:    true,
		},
		{
			description: "invalid mode",
			mutate:      func(request *Request) { request.Mode = "stream" },
			hasError:    true,
		},
		{
			description: "invalid splits in split mode",
			mutate: func(request *Request) {
				request.Mode = shared.ModeSplit
				request.Splits = -1
			},
			hasError: true,
		},
		{
			description: "invalid schedule",
			mutate:      func(request *Request) { request.Schedule = &Schedule{} },
			hasError:    true,
		},
	}

	for _, useCase := range useCases {
		request := newTestRequest()
		err := request.Init()
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		if useCase.mutate != nil {
			useCase.mutate(request)
		}
		err = request.Validate()
		if useCase.hasError {
			assert.NotNil(t, err, useCase.description)
			continue
		}
		assert.Nil(t, err, useCase.description)
	}
}

func TestRequest_Predicates(t *testing.T) {
	request := newTestRequest()
	assert.Nil(t, request.Init())
	assert.False(t, request.IsSplit())
	assert.False(t, request.IsIncremental())

	request.Mode = shared.ModeSplit
	request.DateColumn = "modified"
	assert.True(t, request.IsSplit())
	assert.True(t, request.IsIncremental())
}
