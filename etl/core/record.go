package core

import "strings"

//Record represents a data record
type Record map[string]interface{}

//Get returns record value or nil
func (r Record) Get(key string) interface{} {
	result, _ := r.Value(key)
	return result
}

//Value returns a value for a key, using map lookup first, then case insensitive match
func (r Record) Value(key string) (interface{}, bool) {
	value, ok := r[key]
	if ok {
		return value, ok
	}
	lowerKey := strings.ToLower(key)
	for candidate, v := range r {
		if strings.ToLower(candidate) == lowerKey {
			return v, true
		}
	}
	return nil, false
}

//Records represents a batch of records
type Records []Record
