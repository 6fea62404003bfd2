package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentSizes(t *testing.T) {
	var useCases = []struct {
		description string
		totalRows   int
		numSplits   int
		expect      []int
		hasError    bool
	}{
		{
			description: "remainder spread over first segments",
			totalRows:   25,
			numSplits:   4,
			expect:      []int{7, 6, 6, 6},
		},
		{
			description: "even split",
			totalRows:   20,
			numSplits:   4,
			expect:      []int{5, 5, 5, 5},
		},
		{
			description: "more splits than rows",
			totalRows:   3,
			numSplits:   5,
			expect:      []int{1, 1, 1, 0, 0},
		},
		{
			description: "no rows",
			totalRows:   0,
			numSplits:   3,
			expect:      []int{0, 0, 0},
		},
		{
			description: "invalid splits",
			totalRows:   10,
			numSplits:   0,
			hasError:    true,
		},
	}

	for _, useCase := range useCases {
		actual, err := SegmentSizes(useCase.totalRows, useCase.numSplits)
		if useCase.hasError {
			assert.NotNil(t, err, useCase.description)
			continue
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, useCase.expect, actual, useCase.description)
	}
}

func TestPlanSegments(t *testing.T) {
	segments, err := PlanSegments("orders", 25, 4)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(segments))
	assert.Equal(t, "orders_seg_001", segments[0].Name)
	assert.Equal(t, "orders_seg_004", segments[3].Name)

	offset := 0
	total := 0
	for _, segment := range segments {
		assert.Equal(t, offset, segment.Window.Offset, segment.Name)
		offset += segment.Window.Limit
		total += segment.Window.Limit
	}
	assert.Equal(t, 25, total)
}

func TestSegmentName(t *testing.T) {
	assert.Equal(t, "events_seg_001", SegmentName("events", 0))
	assert.Equal(t, "events_seg_012", SegmentName("events", 11))
}
