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

import (
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
)

// Builder 按行累积值，最后冻结成一个 Array。
// Finish 之后不要复用，需要新列就重新构造一个
type Builder interface {
	Type() types.DataType
	Len() int
	// Append 写入一行。nil 和指向 nil 的指针写入 NULL，
	// 值类型对不上返回错误
	Append(val any) error
	AppendNull()
	Finish() Array
}

// NewBuilder 按类型构造对应的 Builder，容量按需增长
func NewBuilder(typ types.DataType, capacity int) (Builder, error) {
	switch typ {
	case types.Bool:
		return newPrimitiveBuilder[bool](typ, capacity), nil
	case types.Int16:
		return newPrimitiveBuilder[int16](typ, capacity), nil
	case types.Int32:
		return newPrimitiveBuilder[int32](typ, capacity), nil
	case types.Int64:
		return newPrimitiveBuilder[int64](typ, capacity), nil
	case types.Float32:
		return newPrimitiveBuilder[float32](typ, capacity), nil
	case types.Float64:
		return newPrimitiveBuilder[float64](typ, capacity), nil
	case types.Varchar:
		return newPrimitiveBuilder[string](typ, capacity), nil
	default:
		return nil, errs.NewUnknownDataTypeError(typ)
	}
}

type primitiveBuilder[T Value] struct {
	typ    types.DataType
	values []T
	valid  []bool
}

func newPrimitiveBuilder[T Value](typ types.DataType, capacity int) *primitiveBuilder[T] {
	return &primitiveBuilder[T]{
		typ:    typ,
		values: make([]T, 0, capacity),
		valid:  make([]bool, 0, capacity),
	}
}

func (b *primitiveBuilder[T]) Type() types.DataType {
	return b.typ
}

func (b *primitiveBuilder[T]) Len() int {
	return len(b.values)
}

func (b *primitiveBuilder[T]) Append(val any) error {
	if val == nil {
		b.AppendNull()
		return nil
	}
	if v, ok := val.(T); ok {
		b.values = append(b.values, v)
		b.valid = append(b.valid, true)
		return nil
	}
	if p, ok := val.(*T); ok {
		if p == nil {
			b.AppendNull()
			return nil
		}
		b.values = append(b.values, *p)
		b.valid = append(b.valid, true)
		return nil
	}
	return errs.NewAppendTypeError(val, b.typ)
}

func (b *primitiveBuilder[T]) AppendNull() {
	var zero T
	b.values = append(b.values, zero)
	b.valid = append(b.valid, false)
}

func (b *primitiveBuilder[T]) Finish() Array {
	return &Primitive[T]{
		typ:    b.typ,
		values: b.values,
		valid:  b.valid,
	}
}
