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
	"container/heap"
	"context"

	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Order 升序还是降序
type Order bool

const (
	// ASC 升序排序
	ASC Order = true
	// DESC 降序排序
	DESC Order = false
)

// SortColumn 排序列，按下标引用子执行器 schema 里的列
type SortColumn struct {
	index int
	order Order
}

func NewSortColumn(index int, order Order) SortColumn {
	return SortColumn{
		index: index,
		order: order,
	}
}

// MergeSortExecutor 把多个各自有序的子执行器归并成一个整体有序的流。
// 每个子执行器的输入必须已经按 sortCols 排好序，
// 这里只负责归并，不做排序。
// 分组聚合经常吃它的输出，上游各自排好序之后归并一下就能直接聚合
type MergeSortExecutor struct {
	children []Executor
	sortCols []SortColumn
	schema   types.Schema
	identity string
	limit    int
	h        *chunkHeap
	opened   bool
	closed   bool
}

type MergeSortOption func(e *MergeSortExecutor)

// MergeSortWithOutputSizeLimit 设置输出 Chunk 的行数上限
func MergeSortWithOutputSizeLimit(limit int) MergeSortOption {
	return func(e *MergeSortExecutor) {
		e.limit = limit
	}
}

func MergeSortWithIdentity(identity string) MergeSortOption {
	return func(e *MergeSortExecutor) {
		e.identity = identity
	}
}

func NewMergeSort(children []Executor, sortCols []SortColumn, opts ...MergeSortOption) (*MergeSortExecutor, error) {
	if len(children) == 0 {
		return nil, errs.ErrEmptyChildren
	}
	for _, child := range children {
		if child == nil {
			return nil, errs.ErrNilChild
		}
	}
	sch := children[0].Schema()
	for _, child := range children[1:] {
		if !sch.Equal(child.Schema()) {
			return nil, errs.ErrDifferentSchema
		}
	}
	if len(sortCols) == 0 {
		return nil, errs.ErrEmptySortColumns
	}
	seen := make(map[int]struct{}, len(sortCols))
	for _, sc := range sortCols {
		if sc.index < 0 || sc.index >= sch.Len() {
			return nil, errs.NewInvalidSortColumnError(sc.index, sch.Len())
		}
		if _, ok := seen[sc.index]; ok {
			return nil, errs.NewRepeatSortColumnError(sc.index)
		}
		seen[sc.index] = struct{}{}
		if typ := sch.FieldAt(sc.index).Type; !array.CompareSupported(typ) {
			return nil, errs.NewUnknownDataTypeError(typ)
		}
	}

	res := &MergeSortExecutor{
		children: children,
		sortCols: sortCols,
		schema:   sch,
		identity: "MergeSortExecutor",
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

func (e *MergeSortExecutor) Schema() types.Schema {
	return e.schema
}

func (e *MergeSortExecutor) Identity() string {
	return e.identity
}

// Open 并发打开所有子执行器，然后从每个子执行器预取第一个 Chunk 建堆
func (e *MergeSortExecutor) Open(ctx context.Context) error {
	var eg errgroup.Group
	for _, child := range e.children {
		child := child
		eg.Go(func() error {
			return child.Open(ctx)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	e.h = &chunkHeap{
		sortCols: e.sortCols,
	}
	heap.Init(e.h)
	for idx := range e.children {
		cur := &chunkCursor{childIdx: idx}
		if err := e.refill(ctx, cur); err != nil {
			return err
		}
	}
	e.opened = true
	return nil
}

func (e *MergeSortExecutor) Next(ctx context.Context) (*chunk.Chunk, error) {
	if e.closed {
		return nil, errs.ErrExecutorClosed
	}
	if !e.opened {
		return nil, errs.ErrExecutorNotOpen
	}
	if e.h.Len() == 0 {
		return nil, nil
	}
	builders := make([]array.Builder, 0, e.schema.Len())
	for _, field := range e.schema.Fields {
		b, err := array.NewBuilder(field.Type, e.limit)
		if err != nil {
			return nil, err
		}
		builders = append(builders, b)
	}
	rows := 0
	for rows < e.limit && e.h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := heap.Pop(e.h).(*chunkCursor)
		for idx, b := range builders {
			if err := b.Append(cur.chunk.ColumnAt(idx).Datum(cur.row)); err != nil {
				return nil, err
			}
		}
		rows++
		cur.row++
		if cur.row >= cur.chunk.Capacity() {
			if err := e.refill(ctx, cur); err != nil {
				return nil, err
			}
		} else {
			heap.Push(e.h, cur)
		}
	}
	if rows == 0 {
		return nil, nil
	}
	columns := make([]array.Array, 0, len(builders))
	for _, b := range builders {
		columns = append(columns, b.Finish())
	}
	return chunk.New(columns, rows), nil
}

// refill 为 cursor 拉下一个非空 Chunk 并放回堆里。
// 对应的子执行器耗尽时 cursor 直接丢弃
func (e *MergeSortExecutor) refill(ctx context.Context, cur *chunkCursor) error {
	child := e.children[cur.childIdx]
	for {
		c, err := child.Next(ctx)
		if err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		c = c.Compact()
		if c.Cardinality() == 0 {
			continue
		}
		cur.chunk = c
		cur.row = 0
		heap.Push(e.h, cur)
		return nil
	}
}

func (e *MergeSortExecutor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	errorList := make([]error, 0, len(e.children))
	for _, child := range e.children {
		errorList = append(errorList, child.Close())
	}
	return multierr.Combine(errorList...)
}
