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

	"github.com/ecodeclub/ebatch/internal/agg"
	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/ecodeclub/ebatch/internal/types"
)

// SortAggExecutor 对按分组键排好序的输入做流式聚合。
// 每当分组键的取值发生变化，就把上一组的结果写进输出批，
// 输出批攒满 outputSizeLimit 行立刻吐出。
// 整个过程只保留当前分组的累加器，内存跟分组数无关。
//
// 输入必须已经按分组键排序，乱序输入会把同一个组切成多段输出
type SortAggExecutor struct {
	child    Executor
	calls    []agg.Call
	groupKey []expr.Expression
	groupers []agg.SortedGrouper
	states   []agg.State
	schema   types.Schema
	identity string
	limit    int

	opened  bool
	closed  bool
	drained bool
	// noInputData 只要见过一个非空 Chunk 就翻成 false。
	// 分组聚合在空输入下不输出任何东西，全局聚合输出一行
	noInputData bool

	// leftCapacity 当前输出批还能容纳的组数
	leftCapacity  int
	groupBuilders []array.Builder
	aggBuilders   []array.Builder

	// pending 消费到一半的输入 Chunk，Next 之间靠它续上
	pending *pendingChunk
}

// pendingChunk 一个输入 Chunk 的消费进度
type pendingChunk struct {
	chunk *chunk.Chunk
	// cols 分组键表达式求值的结果
	cols []array.Array
	// bounds 本 Chunk 内新分组开始的行下标，升序
	bounds []int
	// pos 下一个待处理的边界
	pos int
	// start 当前分组段的起始行
	start int
}

type SortAggOption func(e *SortAggExecutor)

// WithOutputSizeLimit 设置输出 Chunk 的行数上限
func WithOutputSizeLimit(limit int) SortAggOption {
	return func(e *SortAggExecutor) {
		e.limit = limit
	}
}

func WithIdentity(identity string) SortAggOption {
	return func(e *SortAggExecutor) {
		e.identity = identity
	}
}

// NewSortAgg 构造流式聚合执行器。
// groupKey 为空退化成全局聚合，整个输入算一组。
// 聚合描述和分组键表达式都在这里校验，Next 阶段不再检查
func NewSortAgg(child Executor, calls []agg.Call, groupKey []expr.Expression, opts ...SortAggOption) (*SortAggExecutor, error) {
	if child == nil {
		return nil, errs.ErrNilChild
	}
	childSchema := child.Schema()
	keyTypes := make([]types.DataType, 0, len(groupKey))
	for _, ex := range groupKey {
		if err := expr.Validate(ex, childSchema); err != nil {
			return nil, err
		}
		keyTypes = append(keyTypes, ex.ReturnType())
	}
	groupers, err := agg.NewSortedGroupers(keyTypes)
	if err != nil {
		return nil, err
	}
	states, err := agg.BuildAll(calls, childSchema)
	if err != nil {
		return nil, err
	}

	fields := make([]types.Field, 0, len(groupKey)+len(calls))
	for _, typ := range keyTypes {
		fields = append(fields, types.NewUnnamedField(typ))
	}
	for _, call := range calls {
		fields = append(fields, types.NewUnnamedField(call.ReturnType))
	}

	res := &SortAggExecutor{
		child:    child,
		calls:    calls,
		groupKey: groupKey,
		groupers: groupers,
		states:   states,
		schema:   types.NewSchema(fields...),
		identity: "SortAggExecutor",
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

func (e *SortAggExecutor) Schema() types.Schema {
	return e.schema
}

func (e *SortAggExecutor) Identity() string {
	return e.identity
}

func (e *SortAggExecutor) Open(ctx context.Context) error {
	if err := e.child.Open(ctx); err != nil {
		return err
	}
	if err := e.createBuilders(); err != nil {
		return err
	}
	e.leftCapacity = e.limit
	e.noInputData = true
	e.opened = true
	return nil
}

func (e *SortAggExecutor) Next(ctx context.Context) (*chunk.Chunk, error) {
	if e.closed {
		return nil, errs.ErrExecutorClosed
	}
	if !e.opened {
		return nil, errs.ErrExecutorNotOpen
	}
	if e.drained {
		return nil, nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.pending != nil {
			out, err := e.consumePending()
			if err != nil {
				return nil, err
			}
			if out != nil {
				return out, nil
			}
		}
		child, err := e.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return e.finalFlush()
		}
		compacted := child.Compact()
		if compacted.Cardinality() > 0 {
			e.noInputData = false
		}
		cols, bounds, err := e.detect(compacted)
		if err != nil {
			return nil, err
		}
		e.pending = &pendingChunk{
			chunk:  compacted,
			cols:   cols,
			bounds: bounds,
		}
	}
}

// detect 求值分组键并合并各列检测出的边界
func (e *SortAggExecutor) detect(c *chunk.Chunk) ([]array.Array, []int, error) {
	cols := make([]array.Array, 0, len(e.groupKey))
	for _, ex := range e.groupKey {
		col, err := ex.Eval(c)
		if err != nil {
			return nil, nil, err
		}
		cols = append(cols, col)
	}
	groups := make([]agg.EqGroups, 0, len(e.groupers))
	for idx, g := range e.groupers {
		eg, err := g.DetectGroups(cols[idx])
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, eg)
	}
	return cols, agg.Intersect(groups).Indices(), nil
}

// consumePending 推进当前输入 Chunk 的消费。
// 攒满一个输出批就返回它，否则消费完整个 Chunk 返回 nil
func (e *SortAggExecutor) consumePending() (*chunk.Chunk, error) {
	p := e.pending
	for p.pos < len(p.bounds) {
		boundary := p.bounds[p.pos]
		if p.start < boundary {
			if err := e.updateRange(p, p.start, boundary); err != nil {
				return nil, err
			}
		}
		// 边界处无条件输出：start == boundary 说明上一组
		// 正好在上个 Chunk 的末尾结束，这里补上它的结果
		if err := e.emitGroup(); err != nil {
			return nil, err
		}
		p.start = boundary
		p.pos++
		e.leftCapacity--
		if e.leftCapacity == 0 {
			out := e.finishBatch(e.limit)
			if err := e.createBuilders(); err != nil {
				return nil, err
			}
			e.leftCapacity = e.limit
			return out, nil
		}
	}
	// 最后一段只累加不输出，它可能延续到下一个 Chunk
	if p.start < p.chunk.Cardinality() {
		if err := e.updateRange(p, p.start, p.chunk.Cardinality()); err != nil {
			return nil, err
		}
	}
	e.pending = nil
	return nil, nil
}

func (e *SortAggExecutor) updateRange(p *pendingChunk, start int, end int) error {
	for idx, g := range e.groupers {
		if err := g.Update(p.cols[idx], start, end); err != nil {
			return err
		}
	}
	for _, s := range e.states {
		if err := s.UpdateMulti(p.chunk, start, end); err != nil {
			return err
		}
	}
	return nil
}

// emitGroup 把当前组的键值和聚合结果写进输出批，
// 并为下一个组换上全新的累加器
func (e *SortAggExecutor) emitGroup() error {
	for idx, g := range e.groupers {
		if err := g.Output(e.groupBuilders[idx]); err != nil {
			return err
		}
	}
	for idx, s := range e.states {
		if err := s.Output(e.aggBuilders[idx]); err != nil {
			return err
		}
	}
	states, err := agg.BuildAll(e.calls, e.child.Schema())
	if err != nil {
		return err
	}
	e.states = states
	return nil
}

// finalFlush 输入耗尽后的收尾
func (e *SortAggExecutor) finalFlush() (*chunk.Chunk, error) {
	e.drained = true
	if e.leftCapacity <= 0 {
		panic("ebatch: 输出批容量耗尽却没有吐出，这是一个 bug")
	}
	// 分组聚合没见过任何数据就什么都不输出，
	// 全局聚合此时也要输出一行，COUNT 为 0，其余为 NULL
	if e.noInputData && len(e.groupKey) > 0 {
		return nil, nil
	}
	if err := e.emitGroup(); err != nil {
		return nil, err
	}
	return e.finishBatch(e.limit - e.leftCapacity + 1), nil
}

func (e *SortAggExecutor) finishBatch(card int) *chunk.Chunk {
	columns := make([]array.Array, 0, len(e.groupBuilders)+len(e.aggBuilders))
	for _, b := range e.groupBuilders {
		columns = append(columns, b.Finish())
	}
	for _, b := range e.aggBuilders {
		columns = append(columns, b.Finish())
	}
	return chunk.New(columns, card)
}

func (e *SortAggExecutor) createBuilders() error {
	groupBuilders := make([]array.Builder, 0, len(e.groupers))
	for _, g := range e.groupers {
		b, err := array.NewBuilder(g.Type(), e.limit)
		if err != nil {
			return err
		}
		groupBuilders = append(groupBuilders, b)
	}
	aggBuilders := make([]array.Builder, 0, len(e.states))
	for _, s := range e.states {
		b, err := array.NewBuilder(s.ReturnType(), e.limit)
		if err != nil {
			return err
		}
		aggBuilders = append(aggBuilders, b)
	}
	e.groupBuilders = groupBuilders
	e.aggBuilders = aggBuilders
	return nil
}

func (e *SortAggExecutor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.child.Close()
}
