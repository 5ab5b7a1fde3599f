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

type CompareOp string

const (
	EQ   CompareOp = "="
	NEQ  CompareOp = "!="
	LT   CompareOp = "<"
	LTEQ CompareOp = "<="
	GT   CompareOp = ">"
	GTEQ CompareOp = ">="
)

func (op CompareOp) valid() bool {
	switch op {
	case EQ, NEQ, LT, LTEQ, GT, GTEQ:
		return true
	}
	return false
}

// Comparison 二元比较表达式，返回 Boolean 列。
// 任何一侧为 NULL 的行结果为 NULL
type Comparison struct {
	op    CompareOp
	left  Expression
	right Expression
}

func NewComparison(op CompareOp, left Expression, right Expression) *Comparison {
	return &Comparison{
		op:    op,
		left:  left,
		right: right,
	}
}

func (e *Comparison) ReturnType() types.DataType {
	return types.Bool
}

func (e *Comparison) Eval(c *chunk.Chunk) (array.Array, error) {
	lhs, err := e.left.Eval(c)
	if err != nil {
		return nil, err
	}
	rhs, err := e.right.Eval(c)
	if err != nil {
		return nil, err
	}
	if lhs.Type() != rhs.Type() {
		return nil, errs.NewComparisonTypeError(lhs.Type(), rhs.Type())
	}
	b, err := array.NewBuilder(types.Bool, c.Capacity())
	if err != nil {
		return nil, err
	}
	for i := 0; i < c.Capacity(); i++ {
		if lhs.IsNull(i) || rhs.IsNull(i) {
			b.AppendNull()
			continue
		}
		ok, applyErr := e.apply(array.CompareDatum(lhs.Type(), lhs.Datum(i), rhs.Datum(i)))
		if applyErr != nil {
			return nil, applyErr
		}
		if appendErr := b.Append(ok); appendErr != nil {
			return nil, appendErr
		}
	}
	return b.Finish(), nil
}

func (e *Comparison) apply(cmp int) (bool, error) {
	switch e.op {
	case EQ:
		return cmp == 0, nil
	case NEQ:
		return cmp != 0, nil
	case LT:
		return cmp < 0, nil
	case LTEQ:
		return cmp <= 0, nil
	case GT:
		return cmp > 0, nil
	case GTEQ:
		return cmp >= 0, nil
	}
	return false, errs.NewUnsupportedCompareOpError(string(e.op))
}
