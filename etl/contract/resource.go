package contract

import (
	"fmt"

	"github.com/viant/dsc"
)

//Resource represents a transfer side: a datastore config with table location
type Resource struct {
	*dsc.Config
	Table  string
	Schema string
}

//Init initializes resource
func (r *Resource) Init() error {
	if r.Config == nil {
		return nil
	}
	return r.Config.Init()
}

//Validate checks if resource is valid
func (r *Resource) Validate() error {
	if r.Config == nil {
		return fmt.Errorf("config was empty")
	}
	if r.Table == "" {
		return fmt.Errorf("table was empty")
	}
	return nil
}
