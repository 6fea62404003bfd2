package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/viant/toolbox"
)

//Normalizer prepares extracted records for loading: structured values
//(maps, slices) become JSON text, temporal values are normalized to UTC.
//Column kinds are classified once, from the first batch, then only read.
type Normalizer struct {
	columns Columns
	once    sync.Once
}

func kindOf(value interface{}) string {
	switch {
	case toolbox.IsMap(value), toolbox.IsSlice(value):
		return KindStructured
	case toolbox.IsTime(value):
		return KindTemporal
	}
	return KindScalar
}

//classify assigns column kinds from the first non NULL value per column in
//the first batch; NULL only columns default to scalar. Runs exactly once,
//so concurrent workers only ever read kinds afterwards.
func (n *Normalizer) classify(records Records) {
	n.once.Do(func() {
		for _, column := range n.columns {
			column.Kind = KindScalar
			for _, record := range records {
				value, ok := record.Value(column.Name)
				if !ok || value == nil {
					continue
				}
				column.Kind = kindOf(value)
				break
			}
		}
	})
}

func (n *Normalizer) normalizeValue(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if toolbox.IsMap(value) || toolbox.IsSlice(value) {
		if _, ok := value.([]byte); ok {
			return value, nil
		}
		text, err := toolbox.AsJSONText(value)
		if err != nil {
			return nil, err
		}
		return text, nil
	}
	if timeValue, ok := value.(time.Time); ok {
		return timeValue.In(time.UTC), nil
	}
	return value, nil
}

//Normalize converts a batch of records in place-safe copies
func (n *Normalizer) Normalize(records Records) (Records, error) {
	if len(records) == 0 {
		return records, nil
	}
	n.classify(records)
	var result = make(Records, 0)
	for _, record := range records {
		normalized := Record{}
		for key, value := range record {
			converted, err := n.normalizeValue(value)
			if err != nil {
				return nil, fmt.Errorf("failed to normalize column %v: %v", key, err)
			}
			normalized[key] = converted
		}
		result = append(result, normalized)
	}
	return result, nil
}

//Columns returns the classified columns
func (n *Normalizer) Columns() Columns {
	return n.columns
}

//SampleValues returns up to max non nil values observed for a column,
//used for load failure diagnostics
func (n *Normalizer) SampleValues(records Records, column string, max int) []interface{} {
	var result = make([]interface{}, 0)
	for _, record := range records {
		value, ok := record.Value(column)
		if !ok || value == nil {
			continue
		}
		result = append(result, value)
		if len(result) >= max {
			break
		}
	}
	return result
}

//NewNormalizer creates a normalizer for supplied columns
func NewNormalizer(columns Columns) *Normalizer {
	return &Normalizer{columns: columns}
}
