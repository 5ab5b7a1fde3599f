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

package expr

import (
	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
)

// Expression 向量化表达式。
// Eval 作用于 Chunk 的全部物理行，输出列长度等于 Capacity，
// 可见性由调用方处理，表达式自身不感知
type Expression interface {
	ReturnType() types.DataType
	Eval(c *chunk.Chunk) (array.Array, error)
}

// InputRef 引用输入的第 index 列
type InputRef struct {
	index int
	typ   types.DataType
}

func NewInputRef(index int, typ types.DataType) *InputRef {
	return &InputRef{
		index: index,
		typ:   typ,
	}
}

func (e *InputRef) Index() int {
	return e.index
}

func (e *InputRef) ReturnType() types.DataType {
	return e.typ
}

// Eval 直接返回被引用的列，不发生拷贝
func (e *InputRef) Eval(c *chunk.Chunk) (array.Array, error) {
	if e.index < 0 || e.index >= c.ColumnCount() {
		return nil, errs.NewInvalidColumnIndexError(e.index, c.ColumnCount())
	}
	col := c.ColumnAt(e.index)
	if col.Type() != e.typ {
		return nil, errs.NewTypeMismatchError(e.typ, col.Type())
	}
	return col, nil
}

// Literal 常量表达式，val 为 nil 表示 NULL
type Literal struct {
	val any
	typ types.DataType
}

func NewLiteral(val any, typ types.DataType) *Literal {
	return &Literal{
		val: val,
		typ: typ,
	}
}

func (e *Literal) ReturnType() types.DataType {
	return e.typ
}

func (e *Literal) Eval(c *chunk.Chunk) (array.Array, error) {
	b, err := array.NewBuilder(e.typ, c.Capacity())
	if err != nil {
		return nil, err
	}
	for i := 0; i < c.Capacity(); i++ {
		if e.val == nil {
			b.AppendNull()
			continue
		}
		if appendErr := b.Append(e.val); appendErr != nil {
			return nil, appendErr
		}
	}
	return b.Finish(), nil
}

// Validate 在执行前检查表达式能否作用于给定 schema。
// 表达式类型是封闭集合，遇到外部实现直接报不支持
func Validate(e Expression, sch types.Schema) error {
	switch exp := e.(type) {
	case *InputRef:
		if exp.index < 0 || exp.index >= sch.Len() {
			return errs.NewInvalidColumnIndexError(exp.index, sch.Len())
		}
		if got := sch.FieldAt(exp.index).Type; got != exp.typ {
			return errs.NewTypeMismatchError(exp.typ, got)
		}
		return nil
	case *Literal:
		if exp.val == nil {
			if _, err := array.NewBuilder(exp.typ, 1); err != nil {
				return err
			}
			return nil
		}
		b, err := array.NewBuilder(exp.typ, 1)
		if err != nil {
			return err
		}
		return b.Append(exp.val)
	case *Comparison:
		if err := Validate(exp.left, sch); err != nil {
			return err
		}
		if err := Validate(exp.right, sch); err != nil {
			return err
		}
		lt, rt := exp.left.ReturnType(), exp.right.ReturnType()
		if lt != rt {
			return errs.NewComparisonTypeError(lt, rt)
		}
		if !exp.op.valid() {
			return errs.NewUnsupportedCompareOpError(string(exp.op))
		}
		return nil
	}
	return errs.NewUnsupportedExpressionError(e)
}
