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

// extremeState 同时承担 MIN 和 MAX，
// want 为 -1 求最小值，1 求最大值
type extremeState struct {
	argIndex int
	typ      types.DataType
	want     int
	hasValue bool
	best     any
}

func newExtremeState(arg Arg, want int) *extremeState {
	return &extremeState{
		argIndex: arg.Index,
		typ:      arg.Type,
		want:     want,
	}
}

func (s *extremeState) ReturnType() types.DataType {
	return s.typ
}

func (s *extremeState) UpdateMulti(c *chunk.Chunk, start int, end int) error {
	col := c.ColumnAt(s.argIndex)
	for i := start; i < end; i++ {
		if !c.RowVisible(i) || col.IsNull(i) {
			continue
		}
		v := col.Datum(i)
		if !s.hasValue || array.CompareDatum(s.typ, v, s.best)*s.want > 0 {
			s.best = v
			s.hasValue = true
		}
	}
	return nil
}

func (s *extremeState) Output(b array.Builder) error {
	if !s.hasValue {
		b.AppendNull()
		return nil
	}
	return b.Append(s.best)
}
