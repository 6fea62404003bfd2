package transfer

import (
	"fmt"
	"testing"

	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/dao"
	"etltransfer/etl/shared"

	"github.com/stretchr/testify/assert"
)

func newTestRequest(mode string) *contract.Request {
	return &contract.Request{
		Source:         &contract.Resource{Table: "orders", Schema: "public"},
		Dest:           &contract.Resource{Table: "orders", Schema: "etl"},
		Mode:           mode,
		BatchSize:      10,
		Workers:        3,
		Splits:         4,
		InternalSchema: "etl_internal",
	}
}

func newTestFaker(count int) *dao.Faker {
	columns := core.Columns{
		{Name: "id", Type: "integer"},
		{Name: "payload", Type: "jsonb"},
	}
	var records = make(core.Records, 0)
	for i := 0; i < count; i++ {
		records = append(records, core.Record{
			"id":      i + 1,
			"payload": map[string]interface{}{"seq": i},
		})
	}
	faker := dao.NewFaker()
	faker.SetTable(dao.KindSource, "orders", "public", columns, records)
	return faker
}

func TestService_TransferDirect(t *testing.T) {
	faker := newTestFaker(25)
	service := New(faker)
	ctx := shared.NewContext("test", false)
	job := core.NewJob("test")

	result := service.Transfer(ctx, newTestRequest(shared.ModeDirect), job)
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 25, result.RowsTransferred)
	assert.Equal(t, 25, result.TargetRows)
	assert.Equal(t, 3, result.BatchesProcessed)
	assert.Equal(t, 0, result.BatchesFailed)
	assert.Equal(t, 25, len(faker.Table(dao.KindDest, "orders", "etl")))
	assert.Equal(t, 3, job.Progress())
	assert.Contains(t, faker.Truncated, "orders")
}

func TestService_TransferSplit(t *testing.T) {
	faker := newTestFaker(25)
	service := New(faker)
	ctx := shared.NewContext("test", false)

	result := service.Transfer(ctx, newTestRequest(shared.ModeSplit), nil)
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 25, result.RowsTransferred)
	assert.Equal(t, 25, result.TargetRows)
	assert.Equal(t, 4, result.SegmentsProcessed)
	assert.Equal(t, 0, result.SegmentsFailed)
	assert.Equal(t, 25, len(faker.Table(dao.KindDest, "orders", "etl")))

	//segments are cleaned up after the transfer
	for i := 0; i < 4; i++ {
		assert.False(t, faker.Has(dao.KindSource, core.SegmentName("orders", i), "etl_internal"))
	}
}

func TestService_TransferEmptySource(t *testing.T) {
	faker := newTestFaker(0)
	service := New(faker)
	ctx := shared.NewContext("test", false)

	result := service.Transfer(ctx, newTestRequest(shared.ModeDirect), nil)
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 0, result.RowsTransferred)
	assert.Equal(t, 0, result.BatchesProcessed)
}

func TestService_TransferPartialFailure(t *testing.T) {
	faker := newTestFaker(25)
	faker.FailOn["write:orders"] = fmt.Errorf("deadlock detected")
	service := New(faker)
	ctx := shared.NewContext("test", false)

	result := service.Transfer(ctx, newTestRequest(shared.ModeDirect), nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "deadlock detected")
	assert.Equal(t, 3, result.BatchesFailed)
	assert.Equal(t, 0, result.RowsTransferred)
}

func TestService_TransferSegmentFailureIsolated(t *testing.T) {
	faker := newTestFaker(25)
	faker.FailOn["read:orders_seg_002"] = fmt.Errorf("segment gone")
	service := New(faker)
	ctx := shared.NewContext("test", false)

	result := service.Transfer(ctx, newTestRequest(shared.ModeSplit), nil)
	assert.False(t, result.Success)
	assert.Equal(t, 3, result.SegmentsProcessed)
	assert.Equal(t, 1, result.SegmentsFailed)
	//the other segments still went through
	assert.Equal(t, 19, result.RowsTransferred)
}

func TestService_TransferFatalPreparation(t *testing.T) {
	var useCases = []struct {
		description string
		failOn      string
	}{
		{
			description: "source unreachable",
			failOn:      "connect:source",
		},
		{
			description: "dest unreachable",
			failOn:      "connect:dest",
		},
		{
			description: "missing source schema",
			failOn:      "schema:orders",
		},
		{
			description: "count failure",
			failOn:      "count:orders",
		},
		{
			description: "target truncate failure",
			failOn:      "truncate:orders",
		},
	}

	for _, useCase := range useCases {
		faker := newTestFaker(5)
		faker.FailOn[useCase.failOn] = fmt.Errorf("boom")
		service := New(faker)
		ctx := shared.NewContext("test", false)

		result := service.Transfer(ctx, newTestRequest(shared.ModeDirect), nil)
		assert.False(t, result.Success, useCase.description)
		assert.Contains(t, result.Error, "boom", useCase.description)
		assert.Equal(t, 0, result.RowsTransferred, useCase.description)
	}
}

func TestService_TransferRerunIdempotent(t *testing.T) {
	faker := newTestFaker(25)
	service := New(faker)
	ctx := shared.NewContext("test", false)

	first := service.Transfer(ctx, newTestRequest(shared.ModeDirect), nil)
	assert.True(t, first.Success, first.Error)
	second := service.Transfer(ctx, newTestRequest(shared.ModeDirect), nil)
	assert.True(t, second.Success, second.Error)
	//truncate-then-reload: a re-run converges on the same target state
	assert.Equal(t, 25, first.TargetRows)
	assert.Equal(t, first.TargetRows, second.TargetRows)
	assert.Equal(t, 25, len(faker.Table(dao.KindDest, "orders", "etl")))
}

func TestService_TransferIncrementalNoNewRows(t *testing.T) {
	faker := newTestFaker(10)
	faker.SetTable(dao.KindDest, "orders", "etl", core.Columns{{Name: "id"}, {Name: "payload"}}, core.Records{
		{"id": 100, "payload": nil},
		{"id": 101, "payload": nil},
	})
	faker.Counts["orders"] = 0
	service := New(faker)
	ctx := shared.NewContext("test", false)

	request := newTestRequest(shared.ModeDirect)
	request.DateColumn = "modified"

	result := service.Transfer(ctx, request, nil)
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 0, result.RowsTransferred)
	//an empty incremental run leaves the target untouched
	assert.Equal(t, 2, result.TargetRows)
	assert.Equal(t, 0, len(faker.Truncated))
	assert.Equal(t, 2, len(faker.Table(dao.KindDest, "orders", "etl")))
}

func TestService_TransferIncrementalAppend(t *testing.T) {
	faker := newTestFaker(10)
	faker.SetTable(dao.KindDest, "orders", "etl", core.Columns{{Name: "id"}, {Name: "payload"}}, core.Records{
		{"id": 100, "payload": nil},
	})
	faker.Counts["orders"] = 10
	service := New(faker)
	ctx := shared.NewContext("test", false)

	request := newTestRequest(shared.ModeDirect)
	request.DateColumn = "modified"
	request.Since = "2020-01-01 00:00:00"
	request.AppendOnly = true

	result := service.Transfer(ctx, request, nil)
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 10, result.RowsTransferred)
	//append mode: pre-existing target row survives
	assert.Equal(t, 11, result.TargetRows)
	assert.Equal(t, 0, len(faker.Truncated))
}

func TestService_TransferIncrementalIgnoresSplit(t *testing.T) {
	faker := newTestFaker(10)
	faker.Counts["orders"] = 10
	service := New(faker)
	ctx := shared.NewContext("test", false)

	request := newTestRequest(shared.ModeSplit)
	request.DateColumn = "modified"

	result := service.Transfer(ctx, request, nil)
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 10, result.RowsTransferred)
	assert.Contains(t, result.Warnings, "split mode is ignored for incremental transfer")
	//no segments were materialized
	for i := 0; i < 4; i++ {
		assert.False(t, faker.Has(dao.KindSource, core.SegmentName("orders", i), "etl_internal"))
	}
}
