package core

import (
	"etltransfer/etl/shared"
	"fmt"
)

//Segment represents a materialized snapshot of one source partition,
//paginated independently of writes to the original table
type Segment struct {
	Name   string
	Index  int
	Window Window
	//RowCount rows actually materialized, re-verified post creation
	RowCount int
}

//SegmentName returns segment table name for a split index (0 based)
func SegmentName(table string, index int) string {
	return fmt.Sprintf("%v%v%03d", table, shared.SegmentInfix, index+1)
}

//SegmentSizes distributes totalRows across numSplits segments; sizes differ
//by at most one, with the remainder spread one row each over the first segments.
func SegmentSizes(totalRows, numSplits int) ([]int, error) {
	if numSplits <= 0 {
		return nil, fmt.Errorf("numSplits was invalid: %v", numSplits)
	}
	if totalRows < 0 {
		return nil, fmt.Errorf("totalRows was invalid: %v", totalRows)
	}
	base := totalRows / numSplits
	remainder := totalRows % numSplits
	var result = make([]int, numSplits)
	for i := 0; i < numSplits; i++ {
		result[i] = base
		if i < remainder {
			result[i]++
		}
	}
	return result, nil
}

//PlanSegments builds segment descriptors with monotonically accumulating offsets
func PlanSegments(table string, totalRows, numSplits int) ([]*Segment, error) {
	sizes, err := SegmentSizes(totalRows, numSplits)
	if err != nil {
		return nil, err
	}
	var result = make([]*Segment, 0)
	offset := 0
	for i, size := range sizes {
		result = append(result, &Segment{
			Name:   SegmentName(table, i),
			Index:  i,
			Window: Window{Offset: offset, Limit: size},
		})
		offset += size
	}
	return result, nil
}
