package criteria

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/toolbox"
)

type since struct {
	value string
}

func (c since) String() string {
	return fmt.Sprintf("> '%v'", c.value)
}

//NewSince creates a watermark criterion selecting rows after supplied timestamp
func NewSince(value string) *since {
	return &since{value: value}
}

type lastDay struct{}

func (c lastDay) String() string {
	return ">= CURRENT_DATE - INTERVAL '1 day'"
}

//NewLastDay creates the default watermark: rows from the last 24 hours
func NewLastDay() *lastDay {
	return &lastDay{}
}

//Watermark builds an incremental row filter for supplied column; an empty
//timestamp falls back to the last 24 hours
func Watermark(column, sinceTimestamp string) map[string]interface{} {
	if column == "" {
		return nil
	}
	if sinceTimestamp == "" {
		return map[string]interface{}{column: NewLastDay()}
	}
	return map[string]interface{}{column: NewSince(sinceTimestamp)}
}

//ToCriterion renders a single column predicate as SQL text
func ToCriterion(k string, v interface{}) string {
	switch criterion := v.(type) {
	case *since:
		return fmt.Sprintf("%v %v", k, criterion)
	case *lastDay:
		return fmt.Sprintf("%v %v", k, criterion)
	}
	if _, err := toolbox.ToInt(v); err == nil {
		return fmt.Sprintf("%v = %v", k, v)
	}
	literal := strings.TrimSpace(toolbox.AsString(v))
	if strings.Contains(literal, ">") || strings.Contains(literal, "<") ||
		strings.Contains(strings.ToLower(literal), " null") {
		return fmt.Sprintf("%v %v", k, literal)
	}
	return fmt.Sprintf("%v = '%v'", k, literal)
}

//ToWhereClause renders a filter map as a deterministic WHERE clause body
func ToWhereClause(filter map[string]interface{}) string {
	if len(filter) == 0 {
		return ""
	}
	keys := toolbox.MapKeysToStringSlice(filter)
	sort.Strings(keys)
	var criteria = make([]string, 0)
	for _, k := range keys {
		criteria = append(criteria, ToCriterion(k, filter[k]))
	}
	return strings.Join(criteria, " AND ")
}
