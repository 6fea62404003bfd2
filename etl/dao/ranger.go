package dao

import (
	"etltransfer/etl/core"

	"github.com/viant/toolbox"
)

type recordRanger struct {
	records core.Records
}

//Range iterates records until handler stops or errors
func (r *recordRanger) Range(handler func(item interface{}) (bool, error)) error {
	for i := range r.records {
		next, err := handler(map[string]interface{}(r.records[i]))
		if err != nil {
			return err
		}
		if !next {
			break
		}
	}
	return nil
}

func newRecordRanger(records core.Records) toolbox.Ranger {
	return &recordRanger{records: records}
}
