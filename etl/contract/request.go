package contract

import (
	"fmt"

	"etltransfer/etl/shared"

	"github.com/pkg/errors"
	"github.com/viant/dsc"
	"github.com/viant/toolbox/url"
)

//Request represents a transfer job: immutable once the orchestrator starts
type Request struct {
	Id     string
	Source *Resource
	Dest   *Resource

	//Mode direct or split
	Mode      string
	BatchSize int
	Workers   int
	//Splits segment count in split mode
	Splits int
	//InternalSchema source side schema holding snapshot segments
	InternalSchema string
	DropTarget     bool

	//DateColumn watermark column for incremental transfer
	DateColumn string
	//Since watermark timestamp; empty selects the last 24 hours
	Since string
	//AppendOnly appends filtered rows without truncating the target
	AppendOnly bool

	Debug    bool
	Schedule *Schedule
}

//NewRequestFromURL creates a new request from URL
func NewRequestFromURL(URL string) (*Request, error) {
	resource := url.NewResource(URL)
	result := &Request{}
	return result, resource.Decode(result)
}

//NewRequestFromConfig builds a request from service config
func NewRequestFromConfig(config *shared.Config) *Request {
	return &Request{
		Source: &Resource{
			Config: &dsc.Config{
				DriverName:  config.SourceDriver,
				Descriptor:  config.SourceDescriptor,
				PoolSize:    config.ConnectionPoolSize,
				MaxPoolSize: config.ConnectionMaxPoolMax,
			},
			Table:  config.SourceTable,
			Schema: config.SourceSchema,
		},
		Dest: &Resource{
			Config: &dsc.Config{
				DriverName:  config.TargetDriver,
				Descriptor:  config.TargetDescriptor,
				PoolSize:    config.ConnectionPoolSize,
				MaxPoolSize: config.ConnectionMaxPoolMax,
			},
			Table:  config.TargetTable,
			Schema: config.TargetSchema,
		},
		Mode:           config.Mode,
		BatchSize:      config.BatchSize,
		Workers:        config.Workers,
		Splits:         config.Splits,
		InternalSchema: config.InternalSchema,
		Debug:          config.Debug,
	}
}

//ID returns request ID
func (r *Request) ID() string {
	if r.Id != "" {
		return r.Id
	}
	if r.Dest == nil {
		return ""
	}
	if r.Dest.Config != nil {
		_ = r.Dest.Config.Init()
		if r.Dest.Config.Has("dbname") {
			return r.Dest.Config.Get("dbname") + ":" + r.Dest.Table
		}
	}
	return r.Dest.Table
}

//IsSplit returns true for split mode
func (r *Request) IsSplit() bool {
	return r.Mode == shared.ModeSplit
}

//IsIncremental returns true when a watermark column was supplied
func (r *Request) IsIncremental() bool {
	return r.DateColumn != ""
}

//Init initializes request with defaults
func (r *Request) Init() error {
	if r.Mode == "" {
		r.Mode = shared.ModeDirect
	}
	if r.BatchSize == 0 {
		r.BatchSize = shared.DefaultBatchSize
	}
	if r.Workers == 0 {
		r.Workers = shared.DefaultWorkers
	}
	if r.Splits == 0 {
		r.Splits = shared.DefaultSplits
	}
	if r.InternalSchema == "" {
		r.InternalSchema = shared.DefaultInternalSchema
	}
	if r.Source != nil && r.Dest != nil {
		if r.Dest.Table == "" {
			r.Dest.Table = r.Source.Table
		}
	}
	if r.Source != nil {
		if err := r.Source.Init(); err != nil {
			return errors.Wrap(err, "failed to init source")
		}
	}
	if r.Dest != nil {
		if err := r.Dest.Init(); err != nil {
			return errors.Wrap(err, "failed to init dest")
		}
	}
	return nil
}

//Validate checks if request is valid; violations are configuration errors
//and fail fast before the job starts
func (r *Request) Validate() error {
	if r.Source == nil {
		return fmt.Errorf("source was empty")
	}
	if r.Dest == nil {
		return fmt.Errorf("dest was empty")
	}
	if err := r.Source.Validate(); err != nil {
		return fmt.Errorf("source: %v", err)
	}
	if err := r.Dest.Validate(); err != nil {
		return fmt.Errorf("dest: %v", err)
	}
	if r.BatchSize <= 0 {
		return fmt.Errorf("batchSize was invalid: %v", r.BatchSize)
	}
	if r.Workers <= 0 {
		return fmt.Errorf("workers was invalid: %v", r.Workers)
	}
	if r.Mode != shared.ModeDirect && r.Mode != shared.ModeSplit {
		return fmt.Errorf("mode was invalid: %v", r.Mode)
	}
	if r.IsSplit() && r.Splits <= 0 {
		return fmt.Errorf("splits was invalid: %v", r.Splits)
	}
	if r.Schedule != nil {
		if err := r.Schedule.Validate(); err != nil {
			return err
		}
	}
	return nil
}
