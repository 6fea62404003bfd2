package split

import (
	"fmt"
	"testing"

	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/dao"
	"etltransfer/etl/shared"

	"github.com/stretchr/testify/assert"
)

func newTestContext() *shared.Context {
	return shared.NewContext("test", false)
}

func newTestRequest() *contract.Request {
	return &contract.Request{
		Source:         &contract.Resource{Table: "orders", Schema: "public"},
		Dest:           &contract.Resource{Table: "orders", Schema: "etl"},
		Mode:           shared.ModeSplit,
		Splits:         4,
		InternalSchema: "etl_internal",
	}
}

func seedSource(faker *dao.Faker, count int) {
	columns := core.Columns{{Name: "id", Type: "integer"}}
	var records = make(core.Records, 0)
	for i := 0; i < count; i++ {
		records = append(records, core.Record{"id": i + 1})
	}
	faker.SetTable(dao.KindSource, "orders", "public", columns, records)
}

func TestService_Split(t *testing.T) {
	faker := dao.NewFaker()
	seedSource(faker, 25)
	service := New(faker)
	request := newTestRequest()

	segments, warnings, err := service.Split(newTestContext(), request, 25)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(warnings))
	assert.Equal(t, 4, len(segments))

	assert.Equal(t, 7, segments[0].RowCount)
	assert.Equal(t, 6, segments[1].RowCount)
	for _, segment := range segments {
		assert.True(t, faker.Has(dao.KindSource, segment.Name, "etl_internal"), segment.Name)
	}
	first := faker.Table(dao.KindSource, "orders_seg_001", "etl_internal")
	assert.Equal(t, 7, len(first))
	assert.Equal(t, 1, first[0]["id"])

	last := faker.Table(dao.KindSource, "orders_seg_004", "etl_internal")
	assert.Equal(t, 6, len(last))
	assert.Equal(t, 20, last[0]["id"])
}

func TestService_SplitFailureCleansUp(t *testing.T) {
	faker := dao.NewFaker()
	seedSource(faker, 25)
	faker.FailOn["snapshot:orders_seg_003"] = fmt.Errorf("disk full")
	service := New(faker)
	request := newTestRequest()

	segments, _, err := service.Split(newTestContext(), request, 25)
	assert.NotNil(t, err)
	assert.Nil(t, segments)
	assert.False(t, faker.Has(dao.KindSource, "orders_seg_001", "etl_internal"))
	assert.False(t, faker.Has(dao.KindSource, "orders_seg_002", "etl_internal"))
}

func TestService_Cleanup(t *testing.T) {
	faker := dao.NewFaker()
	seedSource(faker, 25)
	service := New(faker)
	request := newTestRequest()

	segments, _, err := service.Split(newTestContext(), request, 25)
	assert.Nil(t, err)

	warnings := service.Cleanup(newTestContext(), request, segments)
	assert.Equal(t, 0, len(warnings))
	for _, segment := range segments {
		assert.False(t, faker.Has(dao.KindSource, segment.Name, "etl_internal"), segment.Name)
	}
}

func TestService_CleanupOrphans(t *testing.T) {
	faker := dao.NewFaker()
	seedSource(faker, 10)
	faker.SetTable(dao.KindSource, "orders_seg_001", "etl_internal", core.Columns{{Name: "id"}}, core.Records{{"id": 1}})
	faker.SetTable(dao.KindSource, "orders_seg_002", "etl_internal", core.Columns{{Name: "id"}}, core.Records{{"id": 2}})
	service := New(faker)
	request := newTestRequest()

	warnings := service.CleanupOrphans(newTestContext(), request)
	assert.Equal(t, 0, len(warnings))
	assert.False(t, faker.Has(dao.KindSource, "orders_seg_001", "etl_internal"))
	assert.False(t, faker.Has(dao.KindSource, "orders_seg_002", "etl_internal"))
}
