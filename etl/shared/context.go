package shared

import (
	"fmt"
	"log"
)

//Context represents a transfer run context
type Context struct {
	Debug bool
	//ID request ID
	ID string
}

//Log logs run scoped message
func (c *Context) Log(v ...interface{}) {
	if len(v) > 0 {
		v[0] = fmt.Sprintf("[%v] %v", c.ID, v[0])
	}
	log.Print(v...)
}

//Debugf logs only when debug is enabled
func (c *Context) Debugf(format string, v ...interface{}) {
	if !c.Debug {
		return
	}
	c.Log(fmt.Sprintf(format, v...))
}

//NewContext returns new context
func NewContext(ID string, debug bool) *Context {
	return &Context{
		ID:    ID,
		Debug: debug,
	}
}
