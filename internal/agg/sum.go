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
	"github.com/ecodeclub/ebatch/internal/types"
)

// 整数求和提升到 Int64，浮点提升到 Float64，避免窄类型溢出。
// 没有累加过任何非 NULL 值时输出 NULL

type intSumState struct {
	argIndex int
	promote  func(col array.Array, idx int) int64
	hasValue bool
	sum      int64
}

type floatSumState struct {
	argIndex int
	promote  func(col array.Array, idx int) float64
	hasValue bool
	sum      float64
}

func newSumState(arg Arg) (State, error) {
	if promote, ok := toInt64Mapping[arg.Type]; ok {
		return &intSumState{
			argIndex: arg.Index,
			promote:  promote,
		}, nil
	}
	switch arg.Type {
	case types.Float32, types.Float64:
		return &floatSumState{
			argIndex: arg.Index,
			promote:  toFloat64Mapping[arg.Type],
		}, nil
	}
	return nil, errs.NewAggArgTypeError(string(Sum), arg.Type)
}

func (s *intSumState) ReturnType() types.DataType {
	return types.Int64
}

func (s *intSumState) UpdateMulti(c *chunk.Chunk, start int, end int) error {
	col := c.ColumnAt(s.argIndex)
	for i := start; i < end; i++ {
		if !c.RowVisible(i) || col.IsNull(i) {
			continue
		}
		s.sum += s.promote(col, i)
		s.hasValue = true
	}
	return nil
}

func (s *intSumState) Output(b array.Builder) error {
	if !s.hasValue {
		b.AppendNull()
		return nil
	}
	return b.Append(s.sum)
}

func (s *floatSumState) ReturnType() types.DataType {
	return types.Float64
}

func (s *floatSumState) UpdateMulti(c *chunk.Chunk, start int, end int) error {
	col := c.ColumnAt(s.argIndex)
	for i := start; i < end; i++ {
		if !c.RowVisible(i) || col.IsNull(i) {
			continue
		}
		s.sum += s.promote(col, i)
		s.hasValue = true
	}
	return nil
}

func (s *floatSumState) Output(b array.Builder) error {
	if !s.hasValue {
		b.AppendNull()
		return nil
	}
	return b.Append(s.sum)
}
