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
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/ecodeclub/ebatch/internal/types"
)

// Kind 聚合函数种类
type Kind string

const (
	Count Kind = "COUNT"
	Sum   Kind = "SUM"
	Min   Kind = "MIN"
	Max   Kind = "MAX"
	Avg   Kind = "AVG"
)

// Arg 聚合函数的参数，引用输入的某一列
type Arg struct {
	Index int
	Type  types.DataType
}

// Call 一次聚合调用的完整描述。
// Distinct 和 OrderBy 目前只用于拒绝，留作以后扩展
type Call struct {
	Kind       Kind
	Args       []Arg
	ReturnType types.DataType
	Distinct   bool
	OrderBy    []int
	Filter     expr.Expression
}

// WithFilter 返回带过滤条件的副本，
// 只有条件为 true 的行才会进入聚合
func (c Call) WithFilter(cond expr.Expression) Call {
	c.Filter = cond
	return c
}

// ReturnTypeOf 按参数类型推导聚合结果的类型
func ReturnTypeOf(kind Kind, args []Arg) (types.DataType, error) {
	switch kind {
	case Count:
		return types.Int64, nil
	case Sum:
		if len(args) != 1 {
			return types.Invalid, errs.NewAggArgsCountError(string(kind), len(args))
		}
		switch args[0].Type {
		case types.Int16, types.Int32, types.Int64:
			return types.Int64, nil
		case types.Float32, types.Float64:
			return types.Float64, nil
		}
		return types.Invalid, errs.NewAggArgTypeError(string(kind), args[0].Type)
	case Min, Max:
		if len(args) != 1 {
			return types.Invalid, errs.NewAggArgsCountError(string(kind), len(args))
		}
		return args[0].Type, nil
	case Avg:
		if len(args) != 1 {
			return types.Invalid, errs.NewAggArgsCountError(string(kind), len(args))
		}
		if !args[0].Type.IsNumeric() {
			return types.Invalid, errs.NewAggArgTypeError(string(kind), args[0].Type)
		}
		return types.Float64, nil
	}
	return types.Invalid, errs.NewUnsupportedAggKindError(string(kind))
}
