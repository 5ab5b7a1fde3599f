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

package errs

import (
	"errors"
	"fmt"
)

var (
	ErrDistinctUnsupported = errors.New("ebatch: 暂未支持 DISTINCT 聚合")
	ErrOrderByUnsupported  = errors.New("ebatch: 暂未支持 ORDER BY 聚合")
	ErrExecutorNotOpen     = errors.New("ebatch: 执行器尚未 Open")
	ErrExecutorClosed      = errors.New("ebatch: 执行器已经关闭")
	ErrEmptySortColumns    = errors.New("ebatch: 排序列为空")
	ErrEmptyChildren       = errors.New("ebatch: 子执行器列表为空")
	ErrNilChild            = errors.New("ebatch: 子执行器为 nil")
	// ErrDifferentSchema 归并要求所有子执行器输出完全相同的 schema
	ErrDifferentSchema = errors.New("ebatch: 子执行器的输出 schema 不一致")
)

// NewUnknownDataTypeError 返回代表未知数据类型的错误。
// 一般是 schema 或者聚合描述里面带上了本库不支持的类型
func NewUnknownDataTypeError(typ fmt.Stringer) error {
	return fmt.Errorf("ebatch: 未知的数据类型 %s", typ)
}

// NewTypeMismatchError 类型不匹配。
// 大多数情况下意味着表达式、聚合函数的声明类型和实际数据的类型对不上
func NewTypeMismatchError(want fmt.Stringer, got fmt.Stringer) error {
	return fmt.Errorf("ebatch: 类型不匹配，预期 %s，实际 %s", want, got)
}

func NewInvalidColumnIndexError(idx int, width int) error {
	return fmt.Errorf("ebatch: 非法的列下标 %d，输入只有 %d 列", idx, width)
}

func NewAppendTypeError(val any, typ fmt.Stringer) error {
	return fmt.Errorf("ebatch: 无法把 %v 写入 %s 列", val, typ)
}

// NewUnsupportedAggKindError 不支持的聚合函数
func NewUnsupportedAggKindError(kind string) error {
	return fmt.Errorf("ebatch: 不支持的聚合函数 %s", kind)
}

// NewAggArgsCountError 聚合函数收到过多或者过少的参数
func NewAggArgsCountError(kind string, actual int) error {
	return fmt.Errorf("ebatch: 聚合函数 %s 收到过多或者过少的参数，实际 %d", kind, actual)
}

func NewAggArgTypeError(kind string, typ fmt.Stringer) error {
	return fmt.Errorf("ebatch: 聚合函数 %s 不支持 %s 类型的参数", kind, typ)
}

// NewAggReturnTypeError 聚合描述声明的返回类型和参数类型推导出来的对不上
func NewAggReturnTypeError(kind string, want fmt.Stringer, got fmt.Stringer) error {
	return fmt.Errorf("ebatch: 聚合函数 %s 的返回类型应为 %s，实际声明 %s", kind, want, got)
}

// NewFilterTypeError 过滤条件必须返回 Boolean
func NewFilterTypeError(got fmt.Stringer) error {
	return fmt.Errorf("ebatch: 过滤条件必须返回 Boolean 类型，实际 %s", got)
}

// NewUnsupportedExpressionError 表达式类型是封闭集合，外部实现不被接受
func NewUnsupportedExpressionError(expr any) error {
	return fmt.Errorf("ebatch: 不支持的表达式类型 %T", expr)
}

func NewComparisonTypeError(left fmt.Stringer, right fmt.Stringer) error {
	return fmt.Errorf("ebatch: 比较表达式两侧类型不一致：%s 与 %s", left, right)
}

func NewUnsupportedCompareOpError(op string) error {
	return fmt.Errorf("ebatch: 不支持的比较运算符 %s", op)
}

// NewInvalidOutputSizeLimitError output size limit 必须是正数
func NewInvalidOutputSizeLimitError(limit int) error {
	return fmt.Errorf("ebatch: 非法的 output size limit %d，必须为正数", limit)
}

func NewRepeatSortColumnError(idx int) error {
	return fmt.Errorf("ebatch: 排序列重复 %d", idx)
}

func NewInvalidSortColumnError(idx int, width int) error {
	return fmt.Errorf("ebatch: 排序列下标 %d 超出 schema 范围 %d", idx, width)
}

// NewScanColumnsMismatchError 查询结果的列数和声明的 schema 对不上
func NewScanColumnsMismatchError(expect int, actual int) error {
	return fmt.Errorf("ebatch: 查询结果的列数与 schema 不匹配，预期 %d，实际 %d", expect, actual)
}
