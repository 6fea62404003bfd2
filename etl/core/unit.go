package core

import "fmt"

//Unit represents the smallest dispatched piece of work: one window,
//optionally scoped to one segment. Units read disjoint row ranges and
//are safe to run in any order or in parallel.
type Unit struct {
	Batch   int
	Segment *Segment
	Window  Window
	//Filter optional row predicate (incremental append path)
	Filter map[string]interface{}
}

//ID returns unit identity for logging and outcomes
func (u *Unit) ID() string {
	if u.Segment != nil {
		return fmt.Sprintf("%v_batch_%03d", u.Segment.Name, u.Batch)
	}
	return fmt.Sprintf("batch_%03d", u.Batch)
}

//NewUnits builds units for supplied windows, 1-based batch numbering
func NewUnits(segment *Segment, windows []Window, filter map[string]interface{}) []*Unit {
	var result = make([]*Unit, 0)
	for i := range windows {
		result = append(result, &Unit{
			Batch:   i + 1,
			Segment: segment,
			Window:  windows[i],
			Filter:  filter,
		})
	}
	return result
}
