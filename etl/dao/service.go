package dao

import (
	"fmt"
	"strings"

	"etltransfer/etl/contract"
	"etltransfer/etl/core"
	"etltransfer/etl/shared"
	"etltransfer/etl/sql"

	"github.com/viant/dsc"
	"github.com/viant/toolbox"
)

const (
	//KindSource source side resource
	KindSource = "source"
	//KindDest dest side resource
	KindDest = "dest"
)

//Kind represents source or dest resource selector
type Kind string

//Service represents the storage collaborator the transfer core depends on.
//All operations draw a connection from the underlying pool per call.
type Service interface {
	//TestConnection probes datastore liveness
	TestConnection(ctx *shared.Context, kind Kind) error

	//TableSchema returns columns in source ordinal order
	TableSchema(ctx *shared.Context, kind Kind, table, schema string) (core.Columns, error)

	//RowCount counts rows, optionally under a filter predicate
	RowCount(ctx *shared.Context, kind Kind, table, schema string, filter map[string]interface{}) (int, error)

	//CreateSchemaIfAbsent ensures schema exists
	CreateSchemaIfAbsent(ctx *shared.Context, kind Kind, name string) error

	//CreateTableIfAbsent creates table from column specs, optionally dropping an existing one
	CreateTableIfAbsent(ctx *shared.Context, kind Kind, table, schema string, columns core.Columns, dropIfExists bool) error

	//TruncateTable empties a table
	TruncateTable(ctx *shared.Context, kind Kind, table, schema string) error

	//DropTable drops a table, returning true on success
	DropTable(ctx *shared.Context, kind Kind, table, schema string) bool

	//ReadRange reads an ordered row range
	ReadRange(ctx *shared.Context, kind Kind, table, schema string, window core.Window, filter map[string]interface{}) (core.Records, error)

	//WriteRows bulk appends records
	WriteRows(ctx *shared.Context, kind Kind, table, schema string, columns core.Columns, records core.Records) error

	//CreateSnapshotRange materializes an independent copy of an ordered source range
	CreateSnapshotRange(ctx *shared.Context, kind Kind, sourceTable, sourceSchema, destTable, destSchema string, window core.Window) error

	//TablesLike lists table names in a schema matching a pattern
	TablesLike(ctx *shared.Context, kind Kind, schema, pattern string) ([]string, error)

	//Builder returns the SQL builder
	Builder() *sql.Builder

	//Init opens datastore managers
	Init(ctx *shared.Context) error

	//Close closes datastore connections
	Close() error
}

type dbResource struct {
	*contract.Resource
	DB dsc.Manager
}

type service struct {
	source  *dbResource
	dest    *dbResource
	builder *sql.Builder
}

func (s *service) dbResource(kind Kind) *dbResource {
	if kind == KindDest {
		return s.dest
	}
	return s.source
}

func (s *service) Builder() *sql.Builder {
	return s.builder
}

func (s *service) TestConnection(ctx *shared.Context, kind Kind) error {
	resource := s.dbResource(kind)
	result := core.Record{}
	SQL := s.builder.PingDQL()
	ctx.Debugf("%v", SQL)
	ok, err := resource.DB.ReadSingle(&result, SQL, nil, nil)
	if err != nil {
		return fmt.Errorf("%v connection failed: %v", kind, err)
	}
	if !ok {
		return fmt.Errorf("%v connection probe returned no data", kind)
	}
	return nil
}

func (s *service) TableSchema(ctx *shared.Context, kind Kind, table, schema string) (core.Columns, error) {
	resource := s.dbResource(kind)
	records := core.Records{}
	SQL := s.builder.ColumnsDQL(table, schema)
	ctx.Debugf("%v", SQL)
	if err := resource.DB.ReadAll(&records, SQL, nil, nil); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to get schema for table: %v", s.builder.Table(table, schema))
	}
	var result = make(core.Columns, 0)
	for _, record := range records {
		result = append(result, &core.Column{
			Name:     toolbox.AsString(record.Get("column_name")),
			Type:     toolbox.AsString(record.Get("data_type")),
			Nullable: strings.EqualFold(toolbox.AsString(record.Get("is_nullable")), "YES"),
			Default:  asTextOrEmpty(record.Get("column_default")),
		})
	}
	return result, nil
}

func (s *service) RowCount(ctx *shared.Context, kind Kind, table, schema string, filter map[string]interface{}) (int, error) {
	resource := s.dbResource(kind)
	result := core.Record{}
	SQL := s.builder.CountDQL(table, schema, filter)
	ctx.Debugf("%v", SQL)
	ok, err := resource.DB.ReadSingle(&result, SQL, nil, nil)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("failed to count rows in %v", s.builder.Table(table, schema))
	}
	return toolbox.AsInt(result.Get("count_value")), nil
}

func (s *service) CreateSchemaIfAbsent(ctx *shared.Context, kind Kind, name string) error {
	return s.execSQL(ctx, kind, s.builder.SchemaDDL(name))
}

func (s *service) CreateTableIfAbsent(ctx *shared.Context, kind Kind, table, schema string, columns core.Columns, dropIfExists bool) error {
	if schema != "" {
		if err := s.CreateSchemaIfAbsent(ctx, kind, schema); err != nil {
			return err
		}
	}
	if dropIfExists {
		if !s.DropTable(ctx, kind, table, schema) {
			ctx.Log(fmt.Sprintf("failed to drop table %v", s.builder.Table(table, schema)))
		}
	}
	return s.execSQL(ctx, kind, s.builder.DDL(table, schema, columns))
}

func (s *service) TruncateTable(ctx *shared.Context, kind Kind, table, schema string) error {
	return s.execSQL(ctx, kind, s.builder.TruncateDML(table, schema))
}

func (s *service) DropTable(ctx *shared.Context, kind Kind, table, schema string) bool {
	resource := s.dbResource(kind)
	target := s.builder.Table(table, schema)
	ctx.Debugf("DROP TABLE %v", target)
	dialect := dsc.GetDatastoreDialect(resource.DB.Config().DriverName)
	datastore, err := dialect.GetCurrentDatastore(resource.DB)
	if err == nil {
		if err = dialect.DropTable(resource.DB, datastore, target); err == nil {
			return true
		}
	}
	//Fallback to plain DDL for dialects without drop support
	if err = s.execSQL(ctx, kind, s.builder.DropDDL(table, schema)); err != nil {
		ctx.Log(fmt.Sprintf("failed to drop table %v: %v", target, err))
		return false
	}
	return true
}

func (s *service) ReadRange(ctx *shared.Context, kind Kind, table, schema string, window core.Window, filter map[string]interface{}) (core.Records, error) {
	resource := s.dbResource(kind)
	result := core.Records{}
	SQL := s.builder.RangeDQL(table, schema, window, filter)
	ctx.Debugf("%v", SQL)
	err := resource.DB.ReadAll(&result, SQL, nil, nil)
	return result, err
}

func (s *service) WriteRows(ctx *shared.Context, kind Kind, table, schema string, columns core.Columns, records core.Records) error {
	if len(records) == 0 {
		return nil
	}
	resource := s.dbResource(kind)
	target := s.builder.Table(table, schema)
	descriptor := resource.DB.TableDescriptorRegistry().Get(target)
	if descriptor == nil {
		descriptor = &dsc.TableDescriptor{Table: target}
		resource.DB.TableDescriptorRegistry().Register(descriptor)
	}
	if len(descriptor.Columns) == 0 {
		descriptor.Columns = columns.Names()
	}
	dmlProvider := dsc.NewMapDmlProvider(descriptor)
	sqlProvider := func(item interface{}) *dsc.ParametrizedSQL {
		return dmlProvider.Get(dsc.SQLTypeInsert, item)
	}
	connection, err := resource.DB.ConnectionProvider().Get()
	if err != nil {
		return err
	}
	defer func() {
		_ = connection.Close()
	}()
	_, err = resource.DB.PersistData(connection, newRecordRanger(records), target, dmlProvider, sqlProvider)
	return err
}

func (s *service) CreateSnapshotRange(ctx *shared.Context, kind Kind, sourceTable, sourceSchema, destTable, destSchema string, window core.Window) error {
	return s.execSQL(ctx, kind, s.builder.SnapshotDDL(sourceTable, sourceSchema, destTable, destSchema, window))
}

func (s *service) TablesLike(ctx *shared.Context, kind Kind, schema, pattern string) ([]string, error) {
	resource := s.dbResource(kind)
	records := core.Records{}
	SQL := s.builder.TablesDQL(schema, pattern)
	ctx.Debugf("%v", SQL)
	if err := resource.DB.ReadAll(&records, SQL, nil, nil); err != nil {
		return nil, err
	}
	var result = make([]string, 0)
	for _, record := range records {
		result = append(result, toolbox.AsString(record.Get("table_name")))
	}
	return result, nil
}

func (s *service) execSQL(ctx *shared.Context, kind Kind, SQL string) error {
	ctx.Debugf("%v", SQL)
	_, err := s.dbResource(kind).DB.Execute(SQL)
	return err
}

func (s *service) Init(ctx *shared.Context) (err error) {
	if s.source.DB, err = dsc.NewManagerFactory().Create(s.source.Config); err != nil {
		return err
	}
	s.dest.DB, err = dsc.NewManagerFactory().Create(s.dest.Config)
	return err
}

func (s *service) Close() error {
	if s.dest.DB != nil {
		_ = s.dest.DB.ConnectionProvider().Close()
	}
	if s.source.DB != nil {
		return s.source.DB.ConnectionProvider().Close()
	}
	return nil
}

func asTextOrEmpty(value interface{}) string {
	if value == nil {
		return ""
	}
	return toolbox.AsString(value)
}

//New returns new dao service for supplied resources
func New(source, dest *contract.Resource) Service {
	return &service{
		source:  &dbResource{Resource: source},
		dest:    &dbResource{Resource: dest},
		builder: sql.NewBuilder(),
	}
}
