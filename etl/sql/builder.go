package sql

import (
	"fmt"
	"strings"

	"etltransfer/etl/core"
	"etltransfer/etl/criteria"
)

//Builder builds SQL text executed by the dao. Pagination always orders by
//the first column; without that fixed key repeated range reads are undefined.
type Builder struct{}

//Table returns schema qualified table name
func (b *Builder) Table(table, schema string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}

//RangeDQL returns ordered range read DQL for supplied window
func (b *Builder) RangeDQL(table, schema string, window core.Window, filter map[string]interface{}) string {
	where := ""
	if clause := criteria.ToWhereClause(filter); clause != "" {
		where = "\nWHERE " + clause
	}
	return fmt.Sprintf("SELECT * FROM %v%v\nORDER BY 1\nLIMIT %v OFFSET %v",
		b.Table(table, schema), where, window.Limit, window.Offset)
}

//CountDQL returns row count DQL with optional filter
func (b *Builder) CountDQL(table, schema string, filter map[string]interface{}) string {
	where := ""
	if clause := criteria.ToWhereClause(filter); clause != "" {
		where = " WHERE " + clause
	}
	return fmt.Sprintf("SELECT COUNT(1) AS count_value FROM %v%v", b.Table(table, schema), where)
}

//PingDQL returns connection liveness probe DQL
func (b *Builder) PingDQL() string {
	return "SELECT 1 AS ok"
}

//SchemaDDL returns create schema DDL
func (b *Builder) SchemaDDL(name string) string {
	return fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %v", name)
}

//DDL returns create table DDL from captured column specs
func (b *Builder) DDL(table, schema string, columns core.Columns) string {
	var definitions = make([]string, 0)
	for _, column := range columns {
		definition := fmt.Sprintf("%v %v", column.Name, column.Type)
		if !column.Nullable {
			definition += " NOT NULL"
		}
		if column.Default != "" {
			definition += " DEFAULT " + column.Default
		}
		definitions = append(definitions, definition)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %v (\n\t%v\n)",
		b.Table(table, schema), strings.Join(definitions, ",\n\t"))
}

//DropDDL returns drop table DDL
func (b *Builder) DropDDL(table, schema string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %v", b.Table(table, schema))
}

//TruncateDML returns truncate DML
func (b *Builder) TruncateDML(table, schema string) string {
	return fmt.Sprintf("TRUNCATE TABLE %v", b.Table(table, schema))
}

//SnapshotDDL returns DDL materializing an ordered range of the source as an
//independent physical copy
func (b *Builder) SnapshotDDL(sourceTable, sourceSchema, destTable, destSchema string, window core.Window) string {
	return fmt.Sprintf("CREATE TABLE %v AS\nSELECT * FROM %v\nORDER BY 1\nLIMIT %v OFFSET %v",
		b.Table(destTable, destSchema), b.Table(sourceTable, sourceSchema), window.Limit, window.Offset)
}

//ColumnsDQL returns information schema DQL listing columns in ordinal order
func (b *Builder) ColumnsDQL(table, schema string) string {
	where := fmt.Sprintf("table_name = '%v'", table)
	if schema != "" {
		where += fmt.Sprintf(" AND table_schema = '%v'", schema)
	}
	return fmt.Sprintf(`SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE %v
ORDER BY ordinal_position`, where)
}

//TablesDQL returns information schema DQL listing tables matching a pattern
func (b *Builder) TablesDQL(schema, pattern string) string {
	where := fmt.Sprintf("table_schema = '%v'", schema)
	if pattern != "" {
		where += fmt.Sprintf(" AND table_name LIKE '%v'", pattern)
	}
	return fmt.Sprintf("SELECT table_name\nFROM information_schema.tables\nWHERE %v\nORDER BY table_name", where)
}

//NewBuilder creates a builder
func NewBuilder() *Builder {
	return &Builder{}
}
