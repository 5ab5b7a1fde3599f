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
	"github.com/ecodeclub/ebatch/internal/types"
)

// avgState 内部维护 SUM 和 COUNT 两个量，输出的时候再相除
type avgState struct {
	argIndex int
	promote  func(col array.Array, idx int) float64
	sum      float64
	count    int64
}

func newAvgState(arg Arg) *avgState {
	return &avgState{
		argIndex: arg.Index,
		promote:  toFloat64Mapping[arg.Type],
	}
}

func (s *avgState) ReturnType() types.DataType {
	return types.Float64
}

func (s *avgState) UpdateMulti(c *chunk.Chunk, start int, end int) error {
	col := c.ColumnAt(s.argIndex)
	for i := start; i < end; i++ {
		if !c.RowVisible(i) || col.IsNull(i) {
			continue
		}
		s.sum += s.promote(col, i)
		s.count++
	}
	return nil
}

func (s *avgState) Output(b array.Builder) error {
	if s.count == 0 {
		b.AppendNull()
		return nil
	}
	return b.Append(s.sum / float64(s.count))
}
