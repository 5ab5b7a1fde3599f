// Copyright 2021 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package executor

import (
	"context"
	"database/sql"

	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
)

// SQLScanExecutor 执行一条 SQL 查询，把结果集按批转成 Chunk。
// SELECT 加 ORDER BY 分组键再接 SortAggExecutor，
// 就能在数据库之外完成聚合。
// schema 由调用方声明，Open 的时候校验列数是否对得上
type SQLScanExecutor struct {
	db       *sql.DB
	query    string
	args     []any
	schema   types.Schema
	identity string
	limit    int
	rows     *sql.Rows
	opened   bool
	closed   bool
}

type SQLScanOption func(e *SQLScanExecutor)

// SQLScanWithOutputSizeLimit 设置输出 Chunk 的行数上限
func SQLScanWithOutputSizeLimit(limit int) SQLScanOption {
	return func(e *SQLScanExecutor) {
		e.limit = limit
	}
}

func SQLScanWithIdentity(identity string) SQLScanOption {
	return func(e *SQLScanExecutor) {
		e.identity = identity
	}
}

func NewSQLScan(db *sql.DB, query string, args []any, sch types.Schema, opts ...SQLScanOption) (*SQLScanExecutor, error) {
	for _, field := range sch.Fields {
		// 提前确认每种类型都能构造 holder，Open 之后不再检查
		if _, err := newHolder(field.Type); err != nil {
			return nil, err
		}
	}
	res := &SQLScanExecutor{
		db:       db,
		query:    query,
		args:     args,
		schema:   sch,
		identity: "SQLScanExecutor",
		limit:    DefaultOutputSizeLimit,
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.limit <= 0 {
		return nil, errs.NewInvalidOutputSizeLimitError(res.limit)
	}
	return res, nil
}

func (e *SQLScanExecutor) Schema() types.Schema {
	return e.schema
}

func (e *SQLScanExecutor) Identity() string {
	return e.identity
}

func (e *SQLScanExecutor) Open(ctx context.Context) error {
	rows, err := e.db.QueryContext(ctx, e.query, e.args...)
	if err != nil {
		return err
	}
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return err
	}
	if len(cols) != e.schema.Len() {
		_ = rows.Close()
		return errs.NewScanColumnsMismatchError(e.schema.Len(), len(cols))
	}
	e.rows = rows
	e.opened = true
	return nil
}

func (e *SQLScanExecutor) Next(ctx context.Context) (*chunk.Chunk, error) {
	if e.closed {
		return nil, errs.ErrExecutorClosed
	}
	if !e.opened {
		return nil, errs.ErrExecutorNotOpen
	}
	builders := make([]array.Builder, 0, e.schema.Len())
	holders := make([]any, 0, e.schema.Len())
	for _, field := range e.schema.Fields {
		b, err := array.NewBuilder(field.Type, e.limit)
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
		holder, err := newHolder(field.Type)
		if err != nil {
			return nil, err
		}
		holders = append(holders, holder)
	}
	cnt := 0
	for cnt < e.limit && e.rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.rows.Scan(holders...); err != nil {
			return nil, err
		}
		for idx, field := range e.schema.Fields {
			if err := builders[idx].Append(holderDatum(field.Type, holders[idx])); err != nil {
				return nil, err
			}
		}
		cnt++
	}
	if err := e.rows.Err(); err != nil {
		return nil, err
	}
	if cnt == 0 {
		return nil, nil
	}
	columns := make([]array.Array, 0, len(builders))
	for _, b := range builders {
		columns = append(columns, b.Finish())
	}
	return chunk.New(columns, cnt), nil
}

func (e *SQLScanExecutor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.rows != nil {
		return e.rows.Close()
	}
	return nil
}

// newHolder 为一列准备 Scan 用的容器，统一用 sql.NullXxx 处理 NULL
func newHolder(typ types.DataType) (any, error) {
	switch typ {
	case types.Bool:
		return &sql.NullBool{}, nil
	case types.Int16:
		return &sql.NullInt16{}, nil
	case types.Int32:
		return &sql.NullInt32{}, nil
	case types.Int64:
		return &sql.NullInt64{}, nil
	case types.Float32, types.Float64:
		// database/sql 没有 NullFloat32，窄类型借 Float64 的容器
		return &sql.NullFloat64{}, nil
	case types.Varchar:
		return &sql.NullString{}, nil
	}
	return nil, errs.NewUnknownDataTypeError(typ)
}

func holderDatum(typ types.DataType, holder any) any {
	switch h := holder.(type) {
	case *sql.NullBool:
		if !h.Valid {
			return nil
		}
		return h.Bool
	case *sql.NullInt16:
		if !h.Valid {
			return nil
		}
		return h.Int16
	case *sql.NullInt32:
		if !h.Valid {
			return nil
		}
		return h.Int32
	case *sql.NullInt64:
		if !h.Valid {
			return nil
		}
		return h.Int64
	case *sql.NullFloat64:
		if !h.Valid {
			return nil
		}
		if typ == types.Float32 {
			return float32(h.Float64)
		}
		return h.Float64
	case *sql.NullString:
		if !h.Valid {
			return nil
		}
		return h.String
	}
	return nil
}
