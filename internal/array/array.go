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

// Array 不可变的列。
// 构造出来之后只读，可以在执行器之间随意传递
type Array interface {
	Type() types.DataType
	Len() int
	IsNull(idx int) bool
	// Datum 返回第 idx 行装箱之后的值，NULL 返回 nil
	Datum(idx int) any
}

// Value 本库支持的列值类型集合
type Value interface {
	bool | int16 | int32 | int64 | float32 | float64 | string
}

type Primitive[T Value] struct {
	typ    types.DataType
	values []T
	valid  []bool
}

func (a *Primitive[T]) Type() types.DataType {
	return a.typ
}

func (a *Primitive[T]) Len() int {
	return len(a.values)
}

func (a *Primitive[T]) IsNull(idx int) bool {
	return !a.valid[idx]
}

func (a *Primitive[T]) Datum(idx int) any {
	if !a.valid[idx] {
		return nil
	}
	return a.values[idx]
}

// Value 类型化访问，NULL 行返回零值，需要配合 IsNull 使用
func (a *Primitive[T]) Value(idx int) T {
	return a.values[idx]
}

type (
	BoolArray    = Primitive[bool]
	Int16Array   = Primitive[int16]
	Int32Array   = Primitive[int32]
	Int64Array   = Primitive[int64]
	Float32Array = Primitive[float32]
	Float64Array = Primitive[float64]
	VarcharArray = Primitive[string]
)

// Datums 把整列拆成装箱的值，测试里面用来断言比较方便
func Datums(a Array) []any {
	res := make([]any, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		res = append(res, a.Datum(i))
	}
	return res
}
