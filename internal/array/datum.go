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

package array

import "github.com/ecodeclub/ebatch/internal/types"

type ordered interface {
	~int16 | ~int32 | ~int64 | ~float32 | ~float64 | ~string
}

// 升序语义，-1 表示 a < b，1 表示 a > b，0 表示两者相同。
// 需要降序的调用方自己取反

func compare[T ordered](aa any, bb any) int {
	a, b := aa.(T), bb.(T)
	if a < b {
		return -1
	} else if a > b {
		return 1
	} else {
		return 0
	}
}

func compareBool(aa any, bb any) int {
	a, b := aa.(bool), bb.(bool)
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

var compareFuncMapping = map[types.DataType]func(any, any) int{
	types.Bool:    compareBool,
	types.Int16:   compare[int16],
	types.Int32:   compare[int32],
	types.Int64:   compare[int64],
	types.Float32: compare[float32],
	types.Float64: compare[float64],
	types.Varchar: compare[string],
}

// CompareSupported 类型是否支持比较和分组
func CompareSupported(typ types.DataType) bool {
	_, ok := compareFuncMapping[typ]
	return ok
}

// CompareDatum 比较两个非 NULL 的同类型 datum。
// 类型必须在构造执行器的时候校验过，传进未知类型属于编程错误
func CompareDatum(typ types.DataType, a any, b any) int {
	return compareFuncMapping[typ](a, b)
}

// DatumEq 分组语义的相等：NULL 与 NULL 相等
func DatumEq(typ types.DataType, a any, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return CompareDatum(typ, a, b) == 0
}
