package split

import (
	"fmt"

	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/dao"
	"etltransfer/etl/shared"
)

//Service splits a source table into independently paginated snapshot segments.
//A failed split leaves no segments behind; whatever was created gets dropped.
type Service interface {
	//Split materializes snapshot segments covering the whole source table,
	//returning segments, non fatal warnings and error
	Split(ctx *shared.Context, request *contract.Request, totalRows int) ([]*core.Segment, []string, error)

	//Cleanup drops supplied segments best effort, returning warnings for leftovers
	Cleanup(ctx *shared.Context, request *contract.Request, segments []*core.Segment) []string

	//CleanupOrphans drops segments left behind by prior runs
	CleanupOrphans(ctx *shared.Context, request *contract.Request) []string
}

type service struct {
	dao dao.Service
}

func (s *service) Split(ctx *shared.Context, request *contract.Request, totalRows int) ([]*core.Segment, []string, error) {
	var warnings = make([]string, 0)
	if err := s.dao.CreateSchemaIfAbsent(ctx, dao.KindSource, request.InternalSchema); err != nil {
		return nil, warnings, fmt.Errorf("failed to create schema %v: %v", request.InternalSchema, err)
	}
	segments, err := core.PlanSegments(request.Source.Table, totalRows, request.Splits)
	if err != nil {
		return nil, warnings, err
	}
	var created = make([]*core.Segment, 0)
	for _, segment := range segments {
		s.dao.DropTable(ctx, dao.KindSource, segment.Name, request.InternalSchema)
		if err = s.dao.CreateSnapshotRange(ctx, dao.KindSource, request.Source.Table, request.Source.Schema,
			segment.Name, request.InternalSchema, segment.Window); err != nil {
			for _, warning := range s.Cleanup(ctx, request, created) {
				ctx.Log(warning)
			}
			return nil, warnings, fmt.Errorf("failed to create segment %v: %v", segment.Name, err)
		}
		created = append(created, segment)
		ctx.Log(fmt.Sprintf("created segment %v: offset: %v, rows: %v", segment.Name, segment.Window.Offset, segment.Window.Limit))
		s.verify(ctx, request, segment, &warnings)
	}
	return created, warnings, nil
}

//verify re-counts materialized rows; a mismatch is reported, not fatal
func (s *service) verify(ctx *shared.Context, request *contract.Request, segment *core.Segment, warnings *[]string) {
	count, err := s.dao.RowCount(ctx, dao.KindSource, segment.Name, request.InternalSchema, nil)
	if err != nil {
		segment.RowCount = segment.Window.Limit
		*warnings = append(*warnings, fmt.Sprintf("failed to verify segment %v: %v", segment.Name, err))
		return
	}
	segment.RowCount = count
	if count != segment.Window.Limit {
		*warnings = append(*warnings, fmt.Sprintf("segment %v has %v rows, expected %v", segment.Name, count, segment.Window.Limit))
	}
}

func (s *service) Cleanup(ctx *shared.Context, request *contract.Request, segments []*core.Segment) []string {
	var warnings = make([]string, 0)
	for _, segment := range segments {
		if !s.dao.DropTable(ctx, dao.KindSource, segment.Name, request.InternalSchema) {
			warnings = append(warnings, fmt.Sprintf("failed to drop segment %v", segment.Name))
		}
	}
	return warnings
}

func (s *service) CleanupOrphans(ctx *shared.Context, request *contract.Request) []string {
	var warnings = make([]string, 0)
	pattern := request.Source.Table + shared.SegmentInfix + "%"
	tables, err := s.dao.TablesLike(ctx, dao.KindSource, request.InternalSchema, pattern)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to list segments like %v: %v", pattern, err))
		return warnings
	}
	for _, table := range tables {
		if !s.dao.DropTable(ctx, dao.KindSource, table, request.InternalSchema) {
			warnings = append(warnings, fmt.Sprintf("failed to drop segment %v", table))
		}
	}
	return warnings
}

//New creates a split service
func New(dao dao.Service) Service {
	return &service{dao: dao}
}
