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

	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/ecodeclub/ebatch/internal/types"
)

// FilterExecutor 按条件过滤行。
// 只改可见性掩码，不搬数据，要物理移除交给下游 Compact
type FilterExecutor struct {
	child    Executor
	cond     expr.Expression
	identity string
	opened   bool
	closed   bool
}

type FilterOption func(e *FilterExecutor)

func FilterWithIdentity(identity string) FilterOption {
	return func(e *FilterExecutor) {
		e.identity = identity
	}
}

func NewFilter(child Executor, cond expr.Expression, opts ...FilterOption) (*FilterExecutor, error) {
	if child == nil {
		return nil, errs.ErrNilChild
	}
	if err := expr.Validate(cond, child.Schema()); err != nil {
		return nil, err
	}
	if got := cond.ReturnType(); got != types.Bool {
		return nil, errs.NewFilterTypeError(got)
	}
	res := &FilterExecutor{
		child:    child,
		cond:     cond,
		identity: "FilterExecutor",
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

func (e *FilterExecutor) Schema() types.Schema {
	return e.child.Schema()
}

func (e *FilterExecutor) Identity() string {
	return e.identity
}

func (e *FilterExecutor) Open(ctx context.Context) error {
	if err := e.child.Open(ctx); err != nil {
		return err
	}
	e.opened = true
	return nil
}

func (e *FilterExecutor) Next(ctx context.Context) (*chunk.Chunk, error) {
	if e.closed {
		return nil, errs.ErrExecutorClosed
	}
	if !e.opened {
		return nil, errs.ErrExecutorNotOpen
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	child, err := e.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	col, err := e.cond.Eval(child)
	if err != nil {
		return nil, err
	}
	mask, ok := col.(*array.BoolArray)
	if !ok {
		return nil, errs.NewFilterTypeError(col.Type())
	}
	vis := make([]bool, child.Capacity())
	for i := range vis {
		// 条件为 NULL 的行按不满足处理
		vis[i] = child.RowVisible(i) && !mask.IsNull(i) && mask.Value(i)
	}
	return chunk.NewWithVisibility(child.Columns(), vis), nil
}

func (e *FilterExecutor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.child.Close()
}
