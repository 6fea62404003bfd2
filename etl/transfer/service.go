package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-errors/errors"

	"etltransfer/etl/batch"
	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/criteria"
	"etltransfer/etl/dao"
	"etltransfer/etl/shared"
	"etltransfer/etl/split"
)

//Service orchestrates a whole table transfer: prepare target, plan work,
//run it over the worker pool and report one result per invocation.
type Service interface {
	Transfer(ctx *shared.Context, request *contract.Request, job *core.Job) *core.Result
}

type service struct {
	dao      dao.Service
	splitter split.Service
	batcher  batch.Service
}

func (s *service) Transfer(ctx *shared.Context, request *contract.Request, job *core.Job) *core.Result {
	started := time.Now()
	result := core.NewResult()
	defer result.SetTimeTaken(started)

	filter := s.rowFilter(ctx, request, result)
	totalRows, normalizer, err := s.prepare(ctx, request, filter, result)
	if result.SetError(err) {
		return result
	}
	ctx.Log(fmt.Sprintf("transferring %v rows from %v", totalRows, request.Source.Table))
	if totalRows == 0 {
		s.verifyTarget(ctx, request, result, 0)
		return result
	}

	collector := core.NewCollector()
	if request.IsSplit() && !request.IsIncremental() {
		err = s.transferSegmented(ctx, request, normalizer, collector, result, job, totalRows)
	} else {
		err = s.transferDirect(ctx, request, normalizer, collector, job, totalRows, filter)
	}
	if result.SetError(err) {
		return result
	}

	result.RowsTransferred = collector.Rows()
	result.BatchesProcessed = collector.Succeeded()
	result.BatchesFailed = collector.Failed()
	if failures := collector.Errors(); len(failures) > 0 {
		result.SetError(fmt.Errorf("%v unit(s) failed: %v", len(failures), strings.Join(failures, "; ")))
	}
	s.verifyTarget(ctx, request, result, totalRows)
	return result
}

//rowFilter returns the incremental watermark filter, or nil for a full transfer.
//Incremental requests always run direct; segment snapshots do not carry the filter.
func (s *service) rowFilter(ctx *shared.Context, request *contract.Request, result *core.Result) map[string]interface{} {
	if !request.IsIncremental() {
		return nil
	}
	if request.IsSplit() {
		result.AddWarning("split mode is ignored for incremental transfer")
	}
	filter := criteria.Watermark(request.DateColumn, request.Since)
	ctx.Log(fmt.Sprintf("incremental filter: %v", criteria.ToWhereClause(filter)))
	return filter
}

//prepare probes both datastores, captures the source schema, counts the work
//and readies the target table. Failures here are fatal, nothing ran yet.
//A filtered count of zero returns before the target is touched.
func (s *service) prepare(ctx *shared.Context, request *contract.Request, filter map[string]interface{}, result *core.Result) (int, *core.Normalizer, error) {
	if err := s.dao.TestConnection(ctx, dao.KindSource); err != nil {
		return 0, nil, errors.Errorf("source datastore unreachable: %v", err)
	}
	if err := s.dao.TestConnection(ctx, dao.KindDest); err != nil {
		return 0, nil, errors.Errorf("dest datastore unreachable: %v", err)
	}
	columns, err := s.dao.TableSchema(ctx, dao.KindSource, request.Source.Table, request.Source.Schema)
	if err != nil {
		return 0, nil, errors.Errorf("failed to read source schema: %v", err)
	}
	if ordered := columns.OrderColumn(); ordered != nil {
		ctx.Debugf("pagination key: %v", ordered.Name)
	}
	totalRows, err := s.dao.RowCount(ctx, dao.KindSource, request.Source.Table, request.Source.Schema, filter)
	if err != nil {
		return 0, nil, errors.Errorf("failed to count source rows: %v", err)
	}
	if totalRows == 0 && len(filter) > 0 {
		ctx.Log("no rows matched the filter; target left untouched")
		return 0, core.NewNormalizer(columns), nil
	}
	if err = s.dao.CreateTableIfAbsent(ctx, dao.KindDest, request.Dest.Table, request.Dest.Schema, columns, request.DropTarget); err != nil {
		return 0, nil, errors.Errorf("failed to prepare target table: %v", err)
	}
	if request.AppendOnly {
		ctx.Log("append only: target table was not truncated")
	} else {
		if request.IsIncremental() {
			result.AddWarning("target is truncated before an incremental reload; it will only hold rows matching the filter")
		}
		if err = s.dao.TruncateTable(ctx, dao.KindDest, request.Dest.Table, request.Dest.Schema); err != nil {
			return 0, nil, errors.Errorf("failed to truncate target table: %v", err)
		}
	}
	return totalRows, core.NewNormalizer(columns), nil
}

//transferDirect pages the source table itself; units run in parallel
func (s *service) transferDirect(ctx *shared.Context, request *contract.Request, normalizer *core.Normalizer,
	collector *core.Collector, job *core.Job, totalRows int, filter map[string]interface{}) error {
	windows, err := core.PlanWindows(totalRows, request.BatchSize)
	if err != nil {
		return err
	}
	s.runUnits(ctx, request, core.NewUnits(nil, windows, filter), normalizer, collector, job)
	return nil
}

//transferSegmented materializes snapshot segments first, then pages each
//segment in turn. A failed segment does not stop the remaining ones.
func (s *service) transferSegmented(ctx *shared.Context, request *contract.Request, normalizer *core.Normalizer,
	collector *core.Collector, result *core.Result, job *core.Job, totalRows int) error {
	for _, warning := range s.splitter.CleanupOrphans(ctx, request) {
		result.AddWarning(warning)
	}
	segments, warnings, err := s.splitter.Split(ctx, request, totalRows)
	for _, warning := range warnings {
		result.AddWarning(warning)
	}
	if err != nil {
		return err
	}
	defer func() {
		for _, warning := range s.splitter.Cleanup(ctx, request, segments) {
			result.AddWarning(warning)
		}
	}()
	for _, segment := range segments {
		windows, err := core.PlanWindows(segment.RowCount, request.BatchSize)
		if err != nil {
			return err
		}
		failedBefore := collector.Failed()
		s.runUnits(ctx, request, core.NewUnits(segment, windows, nil), normalizer, collector, job)
		if collector.Failed() > failedBefore {
			result.SegmentsFailed++
			ctx.Log(fmt.Sprintf("segment %v completed with failures", segment.Name))
			continue
		}
		result.SegmentsProcessed++
	}
	return nil
}

func (s *service) runUnits(ctx *shared.Context, request *contract.Request, work []*core.Unit,
	normalizer *core.Normalizer, collector *core.Collector, job *core.Job) {
	pool := newUnits(work, request.Workers)
	pool.Range(func(unit *core.Unit) {
		outcome := s.batcher.Transfer(ctx, request, unit, normalizer)
		collector.Collect(outcome)
		if job != nil {
			job.Add(outcome)
		}
	})
}

//verifyTarget re-counts the loaded table; a mismatch against a fully
//successful full reload is a consistency warning
func (s *service) verifyTarget(ctx *shared.Context, request *contract.Request, result *core.Result, totalRows int) {
	targetRows, err := s.dao.RowCount(ctx, dao.KindDest, request.Dest.Table, request.Dest.Schema, nil)
	if err != nil {
		result.AddWarning(fmt.Sprintf("failed to verify target rows: %v", err))
		return
	}
	result.TargetRows = targetRows
	if result.Success && !request.AppendOnly && !request.IsIncremental() && targetRows != totalRows {
		result.AddWarning(fmt.Sprintf("target has %v rows, expected %v", targetRows, totalRows))
	}
}

//New creates a transfer service
func New(daoService dao.Service) Service {
	return &service{
		dao:      daoService,
		splitter: split.New(daoService),
		batcher:  batch.New(daoService),
	}
}
