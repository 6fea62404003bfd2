package core

import "fmt"

//Window represents a half-open row range [Offset, Offset+Limit) against
//a table ordered deterministically by its first column
type Window struct {
	Offset int
	Limit  int
}

//PlanWindows computes the ordered window sequence covering [0, totalRows)
//with all windows of batchSize rows except a possibly smaller trailing one.
func PlanWindows(totalRows, batchSize int) ([]Window, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batchSize was invalid: %v", batchSize)
	}
	if totalRows < 0 {
		return nil, fmt.Errorf("totalRows was invalid: %v", totalRows)
	}
	var result = make([]Window, 0)
	if totalRows == 0 {
		return result, nil
	}
	count := (totalRows + batchSize - 1) / batchSize
	for i := 0; i < count; i++ {
		offset := i * batchSize
		limit := batchSize
		if remaining := totalRows - offset; remaining < limit {
			limit = remaining
		}
		result = append(result, Window{Offset: offset, Limit: limit})
	}
	return result, nil
}
