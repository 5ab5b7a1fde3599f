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
	"github.com/ecodeclub/ebatch/internal/expr"
)

// Column 对输入某一列的引用。
// 可以直接用作分组键，也可以用 EQ 这些方法构造过滤条件
type Column struct {
	*expr.InputRef
}

// C specify column
func C(idx int, typ DataType) Column {
	return Column{
		InputRef: expr.NewInputRef(idx, typ),
	}
}

// EQ =
func (c Column) EQ(val any) Expression {
	return c.cmp(expr.EQ, val)
}

// NEQ !=
func (c Column) NEQ(val any) Expression {
	return c.cmp(expr.NEQ, val)
}

// LT <
func (c Column) LT(val any) Expression {
	return c.cmp(expr.LT, val)
}

// LTEQ <=
func (c Column) LTEQ(val any) Expression {
	return c.cmp(expr.LTEQ, val)
}

// GT >
func (c Column) GT(val any) Expression {
	return c.cmp(expr.GT, val)
}

// GTEQ >=
func (c Column) GTEQ(val any) Expression {
	return c.cmp(expr.GTEQ, val)
}

func (c Column) cmp(op expr.CompareOp, val any) Expression {
	return expr.NewComparison(op, c.InputRef, valueOf(val, c.ReturnType()))
}
