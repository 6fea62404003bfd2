package dao

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"etltransfer/etl/core"
	"etltransfer/etl/shared"
	"etltransfer/etl/sql"
)

//Faker is an in memory dao for tests, with per operation failure injection.
//FailOn keys take the form "op" or "op:table", i.e "write:orders_seg_001".
type Faker struct {
	mutex   *sync.Mutex
	builder *sql.Builder
	tables  map[string]core.Records
	schemas map[string]core.Columns

	FailOn map[string]error
	//Counts overrides filtered row counts per table
	Counts    map[string]int
	Truncated []string
	Dropped   []string
}

func (f *Faker) key(kind Kind, table, schema string) string {
	return string(kind) + ":" + f.builder.Table(table, schema)
}

func (f *Faker) failure(op, table string) error {
	if err, ok := f.FailOn[op+":"+table]; ok {
		return err
	}
	return f.FailOn[op]
}

//SetTable seeds table data
func (f *Faker) SetTable(kind Kind, table, schema string, columns core.Columns, records core.Records) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	key := f.key(kind, table, schema)
	f.schemas[key] = columns
	f.tables[key] = records
}

//Table returns table data
func (f *Faker) Table(kind Kind, table, schema string) core.Records {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.tables[f.key(kind, table, schema)]
}

//Has returns true if table exists
func (f *Faker) Has(kind Kind, table, schema string) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	_, ok := f.tables[f.key(kind, table, schema)]
	return ok
}

func (f *Faker) TestConnection(ctx *shared.Context, kind Kind) error {
	return f.failure("connect", string(kind))
}

func (f *Faker) TableSchema(ctx *shared.Context, kind Kind, table, schema string) (core.Columns, error) {
	if err := f.failure("schema", table); err != nil {
		return nil, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	columns, ok := f.schemas[f.key(kind, table, schema)]
	if !ok {
		return nil, fmt.Errorf("failed to get schema for table: %v", table)
	}
	return columns, nil
}

func (f *Faker) RowCount(ctx *shared.Context, kind Kind, table, schema string, filter map[string]interface{}) (int, error) {
	if err := f.failure("count", table); err != nil {
		return 0, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if len(filter) > 0 {
		if count, ok := f.Counts[table]; ok {
			return count, nil
		}
	}
	return len(f.tables[f.key(kind, table, schema)]), nil
}

func (f *Faker) CreateSchemaIfAbsent(ctx *shared.Context, kind Kind, name string) error {
	return f.failure("createSchema", name)
}

func (f *Faker) CreateTableIfAbsent(ctx *shared.Context, kind Kind, table, schema string, columns core.Columns, dropIfExists bool) error {
	if err := f.failure("createTable", table); err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	key := f.key(kind, table, schema)
	f.schemas[key] = columns
	if _, ok := f.tables[key]; !ok || dropIfExists {
		f.tables[key] = core.Records{}
	}
	return nil
}

func (f *Faker) TruncateTable(ctx *shared.Context, kind Kind, table, schema string) error {
	if err := f.failure("truncate", table); err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.tables[f.key(kind, table, schema)] = core.Records{}
	f.Truncated = append(f.Truncated, table)
	return nil
}

func (f *Faker) DropTable(ctx *shared.Context, kind Kind, table, schema string) bool {
	if err := f.failure("drop", table); err != nil {
		return false
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	key := f.key(kind, table, schema)
	delete(f.tables, key)
	delete(f.schemas, key)
	f.Dropped = append(f.Dropped, table)
	return true
}

func (f *Faker) ReadRange(ctx *shared.Context, kind Kind, table, schema string, window core.Window, filter map[string]interface{}) (core.Records, error) {
	if err := f.failure("read", table); err != nil {
		return nil, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	records := f.tables[f.key(kind, table, schema)]
	if window.Offset >= len(records) {
		return core.Records{}, nil
	}
	end := window.Offset + window.Limit
	if end > len(records) {
		end = len(records)
	}
	return records[window.Offset:end], nil
}

func (f *Faker) WriteRows(ctx *shared.Context, kind Kind, table, schema string, columns core.Columns, records core.Records) error {
	if err := f.failure("write", table); err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	key := f.key(kind, table, schema)
	f.tables[key] = append(f.tables[key], records...)
	return nil
}

func (f *Faker) CreateSnapshotRange(ctx *shared.Context, kind Kind, sourceTable, sourceSchema, destTable, destSchema string, window core.Window) error {
	if err := f.failure("snapshot", destTable); err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	records := f.tables[f.key(kind, sourceTable, sourceSchema)]
	end := window.Offset + window.Limit
	if end > len(records) {
		end = len(records)
	}
	var snapshot core.Records
	if window.Offset < len(records) {
		snapshot = append(snapshot, records[window.Offset:end]...)
	}
	destKey := f.key(kind, destTable, destSchema)
	f.tables[destKey] = snapshot
	f.schemas[destKey] = f.schemas[f.key(kind, sourceTable, sourceSchema)]
	return nil
}

func (f *Faker) TablesLike(ctx *shared.Context, kind Kind, schema, pattern string) ([]string, error) {
	if err := f.failure("tables", pattern); err != nil {
		return nil, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	prefix := string(kind) + ":"
	if schema != "" {
		prefix += schema + "."
	}
	prefix += strings.TrimSuffix(pattern, "%")
	var result = make([]string, 0)
	for key := range f.tables {
		if strings.HasPrefix(key, prefix) {
			name := key[strings.Index(key, ":")+1:]
			if index := strings.Index(name, "."); index != -1 {
				name = name[index+1:]
			}
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (f *Faker) Builder() *sql.Builder {
	return f.builder
}

func (f *Faker) Init(ctx *shared.Context) error {
	return f.FailOn["init"]
}

func (f *Faker) Close() error {
	return nil
}

//NewFaker returns new in memory dao
func NewFaker() *Faker {
	return &Faker{
		mutex:   &sync.Mutex{},
		builder: sql.NewBuilder(),
		tables:  make(map[string]core.Records),
		schemas: make(map[string]core.Columns),
		FailOn:  make(map[string]error),
		Counts:  make(map[string]int),
	}
}
