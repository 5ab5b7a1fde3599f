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

// countState 空组输出 0 而不是 NULL，这是它和其他聚合最大的区别
type countState struct {
	// argIndex 为 -1 表示 COUNT(*)，数行不看列值
	argIndex int
	count    int64
}

func newCountState(args []Arg) *countState {
	idx := -1
	if len(args) == 1 {
		idx = args[0].Index
	}
	return &countState{
		argIndex: idx,
	}
}

func (s *countState) ReturnType() types.DataType {
	return types.Int64
}

func (s *countState) UpdateMulti(c *chunk.Chunk, start int, end int) error {
	var col array.Array
	if s.argIndex >= 0 {
		col = c.ColumnAt(s.argIndex)
	}
	for i := start; i < end; i++ {
		if !c.RowVisible(i) {
			continue
		}
		if col != nil && col.IsNull(i) {
			continue
		}
		s.count++
	}
	return nil
}

func (s *countState) Output(b array.Builder) error {
	return b.Append(s.count)
}
