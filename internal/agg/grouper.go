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
	"sort"

	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
)

// EqGroups 一列在一个 Chunk 内检测出的分组边界。
// 下标指向每个新分组的第一行，严格升序
type EqGroups struct {
	indices []int
}

func NewEqGroups(indices ...int) EqGroups {
	return EqGroups{
		indices: indices,
	}
}

func (g EqGroups) Indices() []int {
	return g.indices
}

// Intersect 合并多个分组列各自的边界。
// 任何一列切出的边界都是整体的边界，所以结果是去重后的升序并集。
// 没有分组列时返回空，所有行都算同一组
func Intersect(groups []EqGroups) EqGroups {
	total := 0
	for _, g := range groups {
		total += len(g.indices)
	}
	if total == 0 {
		return EqGroups{}
	}
	merged := make([]int, 0, total)
	for _, g := range groups {
		merged = append(merged, g.indices...)
	}
	sort.Ints(merged)
	deduped := merged[:1]
	for _, v := range merged[1:] {
		if v != deduped[len(deduped)-1] {
			deduped = append(deduped, v)
		}
	}
	return EqGroups{indices: deduped}
}

// SortedGrouper 按序检测单个分组列的边界，并记住当前分组的键值。
// 输入必须已经按这一列排好序，乱序输入会产生错误的分组
type SortedGrouper interface {
	Type() types.DataType
	// DetectGroups 找出 col 中开启新分组的行下标。
	// 纯函数，不修改 grouper 自身的状态
	DetectGroups(col array.Array) (EqGroups, error)
	// Update 把 [start, end) 的最后一行记为当前分组的键值
	Update(col array.Array, start int, end int) error
	// Output 把当前分组的键值写入 b
	Output(b array.Builder) error
}

func NewSortedGrouper(typ types.DataType) (SortedGrouper, error) {
	if !array.CompareSupported(typ) {
		return nil, errs.NewUnknownDataTypeError(typ)
	}
	return &generalSortedGrouper{
		typ: typ,
	}, nil
}

// NewSortedGroupers 为每个分组列类型构造一个 grouper
func NewSortedGroupers(typs []types.DataType) ([]SortedGrouper, error) {
	groupers := make([]SortedGrouper, 0, len(typs))
	for _, typ := range typs {
		g, err := NewSortedGrouper(typ)
		if err != nil {
			return nil, err
		}
		groupers = append(groupers, g)
	}
	return groupers, nil
}

type generalSortedGrouper struct {
	typ types.DataType
	// ongoing 为 false 表示还没见过任何一行
	ongoing bool
	last    any
}

func (g *generalSortedGrouper) Type() types.DataType {
	return g.typ
}

func (g *generalSortedGrouper) DetectGroups(col array.Array) (EqGroups, error) {
	if col.Type() != g.typ {
		return EqGroups{}, errs.NewTypeMismatchError(g.typ, col.Type())
	}
	var indices []int
	ongoing := g.ongoing
	last := g.last
	for i := 0; i < col.Len(); i++ {
		cur := col.Datum(i)
		// NULL 与 NULL 视作同一组
		if ongoing && array.DatumEq(g.typ, last, cur) {
			continue
		}
		if ongoing {
			indices = append(indices, i)
		}
		ongoing = true
		last = cur
	}
	return EqGroups{indices: indices}, nil
}

func (g *generalSortedGrouper) Update(col array.Array, start int, end int) error {
	if col.Type() != g.typ {
		return errs.NewTypeMismatchError(g.typ, col.Type())
	}
	g.ongoing = true
	g.last = col.Datum(end - 1)
	return nil
}

func (g *generalSortedGrouper) Output(b array.Builder) error {
	if !g.ongoing {
		b.AppendNull()
		return nil
	}
	return b.Append(g.last)
}
