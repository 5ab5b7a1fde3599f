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

package ebatch

import (
	"github.com/ecodeclub/ebatch/internal/agg"
)

// Avg represents AVG
func Avg(idx int, typ DataType) AggCall {
	return newCall(agg.Avg, idx, typ)
}

// Max represents MAX
func Max(idx int, typ DataType) AggCall {
	return newCall(agg.Max, idx, typ)
}

// Min represents MIN
func Min(idx int, typ DataType) AggCall {
	return newCall(agg.Min, idx, typ)
}

// Count represents COUNT
func Count(idx int, typ DataType) AggCall {
	return newCall(agg.Count, idx, typ)
}

// CountStar represents COUNT(*)
func CountStar() AggCall {
	return AggCall{Kind: agg.Count, ReturnType: Int64}
}

// Sum represents SUM
func Sum(idx int, typ DataType) AggCall {
	return newCall(agg.Sum, idx, typ)
}

func newCall(kind agg.Kind, idx int, typ DataType) AggCall {
	args := []agg.Arg{{Index: idx, Type: typ}}
	// 参数类型不合法时这里拿到的是零值，留给 NewSortAgg 统一报错
	ret, _ := agg.ReturnTypeOf(kind, args)
	return AggCall{Kind: kind, Args: args, ReturnType: ret}
}
