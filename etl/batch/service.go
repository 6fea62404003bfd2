package batch

import (
	"fmt"
	"time"

	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/dao"
	"etltransfer/etl/shared"
)

const diagnosticSampleSize = 3

//Service moves one unit of work: extract a window, normalize it, load it.
//A unit failure never propagates as an error, only as a failed outcome.
type Service interface {
	Transfer(ctx *shared.Context, request *contract.Request, unit *core.Unit, normalizer *core.Normalizer) *core.Outcome
}

type service struct {
	dao dao.Service
}

func (s *service) source(request *contract.Request, unit *core.Unit) (string, string) {
	if unit.Segment != nil {
		return unit.Segment.Name, request.InternalSchema
	}
	return request.Source.Table, request.Source.Schema
}

func (s *service) Transfer(ctx *shared.Context, request *contract.Request, unit *core.Unit, normalizer *core.Normalizer) *core.Outcome {
	started := time.Now()
	table, schema := s.source(request, unit)
	records, err := s.dao.ReadRange(ctx, dao.KindSource, table, schema, unit.Window, unit.Filter)
	if err != nil {
		outcome := core.NewOutcome(unit, started)
		outcome.SetError(fmt.Errorf("failed to extract %v: %v", unit.ID(), err))
		return outcome
	}
	if len(records) == 0 {
		outcome := core.NewOutcome(unit, started)
		ctx.Debugf("unit %v: empty window, nothing to load", unit.ID())
		return outcome
	}
	normalized, err := normalizer.Normalize(records)
	if err != nil {
		outcome := core.NewOutcome(unit, started)
		outcome.SetError(fmt.Errorf("failed to normalize %v: %v", unit.ID(), err))
		return outcome
	}
	if err = s.dao.WriteRows(ctx, dao.KindDest, request.Dest.Table, request.Dest.Schema, normalizer.Columns(), normalized); err != nil {
		s.diagnose(ctx, unit, normalizer, normalized)
		outcome := core.NewOutcome(unit, started)
		outcome.SetError(fmt.Errorf("failed to load %v: %v", unit.ID(), err))
		return outcome
	}
	outcome := core.NewOutcome(unit, started)
	outcome.RowsProcessed = len(normalized)
	ctx.Log(fmt.Sprintf("unit %v: %v rows in %s", unit.ID(), outcome.RowsProcessed, outcome.TimeTaken))
	return outcome
}

//diagnose logs shape info for structured columns after a load failure
func (s *service) diagnose(ctx *shared.Context, unit *core.Unit, normalizer *core.Normalizer, records core.Records) {
	for _, column := range normalizer.Columns() {
		if column.Kind != core.KindStructured {
			continue
		}
		samples := normalizer.SampleValues(records, column.Name, diagnosticSampleSize)
		ctx.Log(fmt.Sprintf("unit %v: structured column %v, samples: %v", unit.ID(), column.Name, samples))
	}
}

//New creates a batch transfer service
func New(dao dao.Service) Service {
	return &service{dao: dao}
}
