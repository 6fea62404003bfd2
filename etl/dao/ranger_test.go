package dao

import (
	"fmt"
	"testing"

	"etltransfer/etl/core"

	"github.com/stretchr/testify/assert"
)

func TestRecordRanger_Range(t *testing.T) {
	records := core.Records{
		{"id": 1},
		{"id": 2},
		{"id": 3},
	}
	ranger := newRecordRanger(records)

	var visited = make([]interface{}, 0)
	err := ranger.Range(func(item interface{}) (bool, error) {
		visited = append(visited, item.(map[string]interface{})["id"])
		return true, nil
	})
	assert.Nil(t, err)
	assert.EqualValues(t, []interface{}{1, 2, 3}, visited)
}

func TestRecordRanger_RangeStops(t *testing.T) {
	ranger := newRecordRanger(core.Records{{"id": 1}, {"id": 2}})
	count := 0
	err := ranger.Range(func(item interface{}) (bool, error) {
		count++
		return false, nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordRanger_RangeError(t *testing.T) {
	ranger := newRecordRanger(core.Records{{"id": 1}})
	err := ranger.Range(func(item interface{}) (bool, error) {
		return true, fmt.Errorf("write failed")
	})
	assert.NotNil(t, err)
}
