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

// State 单个分组的聚合累加器。
// NULL 行一律跳过，COUNT(*) 除外
type State interface {
	ReturnType() types.DataType
	// UpdateMulti 累加 c 的 [start, end) 物理行区间，
	// 不可见的行会被跳过
	UpdateMulti(c *chunk.Chunk, start int, end int) error
	// Output 把当前结果追加到 b。
	// 不重置状态，换组要重新 Build
	Output(b array.Builder) error
}

type integer interface {
	int16 | int32 | int64
}

type numeric interface {
	integer | float32 | float64
}

func promoteInt[T integer](col array.Array, idx int) int64 {
	return int64(col.(*array.Primitive[T]).Value(idx))
}

func promoteFloat[T numeric](col array.Array, idx int) float64 {
	return float64(col.(*array.Primitive[T]).Value(idx))
}

var toInt64Mapping = map[types.DataType]func(col array.Array, idx int) int64{
	types.Int16: promoteInt[int16],
	types.Int32: promoteInt[int32],
	types.Int64: promoteInt[int64],
}

var toFloat64Mapping = map[types.DataType]func(col array.Array, idx int) float64{
	types.Int16:   promoteFloat[int16],
	types.Int32:   promoteFloat[int32],
	types.Int64:   promoteFloat[int64],
	types.Float32: promoteFloat[float32],
	types.Float64: promoteFloat[float64],
}
