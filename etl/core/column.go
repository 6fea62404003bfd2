package core

import "strings"

const (
	//KindScalar plain scalar value column
	KindScalar = "scalar"
	//KindStructured column carrying maps or slices, persisted as JSON text
	KindStructured = "structured"
	//KindTemporal date/time column
	KindTemporal = "temporal"
)

//Column represents a source column captured in ordinal order
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	//Kind value classification assigned during normalization
	Kind string
}

//Columns represents table schema: columns in source ordinal order
type Columns []*Column

//Names returns column names in ordinal order
func (c Columns) Names() []string {
	var result = make([]string, 0)
	for i := range c {
		result = append(result, c[i].Name)
	}
	return result
}

//Column returns a column matched case insensitively, or nil
func (c Columns) Column(name string) *Column {
	for i := range c {
		if c[i].Name == name {
			return c[i]
		}
	}
	lowerName := strings.ToLower(name)
	for i := range c {
		if strings.ToLower(c[i].Name) == lowerName {
			return c[i]
		}
	}
	return nil
}

//OrderColumn returns the first ordinal column, the mandatory stable order key
func (c Columns) OrderColumn() *Column {
	if len(c) == 0 {
		return nil
	}
	return c[0]
}
