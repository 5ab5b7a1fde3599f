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

package agg

import (
	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/ecodeclub/ebatch/internal/types"
)

// filterState 包装另一个累加器，只放行条件为 true 的行。
// 条件为 NULL 或者 false 的行不参与聚合
type filterState struct {
	cond  expr.Expression
	inner State
}

func (s *filterState) ReturnType() types.DataType {
	return s.inner.ReturnType()
}

func (s *filterState) UpdateMulti(c *chunk.Chunk, start int, end int) error {
	col, err := s.cond.Eval(c)
	if err != nil {
		return err
	}
	mask, ok := col.(*array.BoolArray)
	if !ok {
		return errs.NewFilterTypeError(col.Type())
	}
	// 连续放行的行合并成一个区间传给内层，减少调用次数
	runStart := -1
	for i := start; i < end; i++ {
		pass := c.RowVisible(i) && !mask.IsNull(i) && mask.Value(i)
		if pass {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			if updateErr := s.inner.UpdateMulti(c, runStart, i); updateErr != nil {
				return updateErr
			}
			runStart = -1
		}
	}
	if runStart >= 0 {
		return s.inner.UpdateMulti(c, runStart, end)
	}
	return nil
}

func (s *filterState) Output(b array.Builder) error {
	return s.inner.Output(b)
}
