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

package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/ebatch/internal/agg"
	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/ecodeclub/ebatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Schema() types.Schema {
	return types.NewSchema(types.NewUnnamedField(types.Int64))
}

func TestMergeSortExecutor(t *testing.T) {
	testcases := []struct {
		name     string
		inputs   [][]string
		sortCols []SortColumn
		limit    int
		want     [][]any
	}{
		{
			name: "两路升序归并",
			inputs: [][]string{
				{`I
                  1
                  3
                  5`},
				{`I
                  2
                  4
                  6`},
			},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			limit:    10,
			want:     [][]any{i64s(1, 2, 3, 4, 5, 6)},
		},
		{
			name: "按批大小切分输出",
			inputs: [][]string{
				{`I
                  1
                  3
                  5`},
				{`I
                  2
                  4
                  6`},
			},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			limit:    4,
			want: [][]any{
				i64s(1, 2, 3, 4),
				i64s(5, 6),
			},
		},
		{
			name: "降序归并",
			inputs: [][]string{
				{`I
                  9
                  5
                  1`},
				{`I
                  8
                  2`},
			},
			sortCols: []SortColumn{NewSortColumn(0, DESC)},
			limit:    10,
			want:     [][]any{i64s(9, 8, 5, 2, 1)},
		},
		{
			name: "升序 NULL 排最前",
			inputs: [][]string{
				{`I
                  .
                  3`},
				{`I
                  1`},
			},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			limit:    10,
			want:     [][]any{{nil, int64(1), int64(3)}},
		},
		{
			name: "降序 NULL 排最后",
			inputs: [][]string{
				{`I
                  3
                  .`},
				{`I
                  1`},
			},
			sortCols: []SortColumn{NewSortColumn(0, DESC)},
			limit:    10,
			want:     [][]any{{int64(3), int64(1), nil}},
		},
		{
			name: "子执行器分多个 Chunk 吐数据",
			inputs: [][]string{
				{
					`I
                     1`,
					`I
                     4
                     7`,
				},
				{
					`I
                     2
                     5`,
					`I
                     9`,
				},
			},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			limit:    10,
			want:     [][]any{i64s(1, 2, 4, 5, 7, 9)},
		},
		{
			name: "单路原样吐出",
			inputs: [][]string{
				{`I
                  2
                  4`},
			},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			limit:    10,
			want:     [][]any{i64s(2, 4)},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			children := make([]Executor, 0, len(tc.inputs))
			for _, texts := range tc.inputs {
				chunks := make([]*chunk.Chunk, 0, len(texts))
				for _, text := range texts {
					chunks = append(chunks, chunk.MustParse(text))
				}
				children = append(children, NewMockExecutor(int64Schema(), chunks...))
			}
			exec, err := NewMergeSort(children, tc.sortCols, MergeSortWithOutputSizeLimit(tc.limit))
			require.NoError(t, err)

			got := collectAll(t, exec)
			require.Len(t, got, len(tc.want))
			for i, wantCol := range tc.want {
				assert.Equal(t, wantCol, array.Datums(got[i].ColumnAt(0)))
			}
		})
	}
}

func TestMergeSort_MultiColumn(t *testing.T) {
	sch := types.NewSchema(
		types.NewUnnamedField(types.Int32),
		types.NewUnnamedField(types.Varchar),
	)
	left := NewMockExecutor(sch, chunk.MustParse(`i T
     1 b
     2 a`))
	right := NewMockExecutor(sch, chunk.MustParse(`i T
     1 a
     2 b`))
	exec, err := NewMergeSort([]Executor{left, right}, []SortColumn{
		NewSortColumn(0, ASC),
		NewSortColumn(1, DESC),
	}, MergeSortWithOutputSizeLimit(10))
	require.NoError(t, err)

	got := collectAll(t, exec)
	require.Len(t, got, 1)
	assert.Equal(t, i32s(1, 1, 2, 2), array.Datums(got[0].ColumnAt(0)))
	assert.Equal(t, []any{"b", "a", "b", "a"}, array.Datums(got[0].ColumnAt(1)))
}

func TestNewMergeSort_Invalid(t *testing.T) {
	child := NewMockExecutor(int64Schema())
	testcases := []struct {
		name     string
		children []Executor
		sortCols []SortColumn
		opts     []MergeSortOption
		wantErr  error
	}{
		{
			name:     "children 为空",
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			wantErr:  errs.ErrEmptyChildren,
		},
		{
			name:     "children 里有 nil",
			children: []Executor{child, nil},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			wantErr:  errs.ErrNilChild,
		},
		{
			name: "schema 不一致",
			children: []Executor{
				child,
				NewMockExecutor(types.NewSchema(types.NewUnnamedField(types.Int32))),
			},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			wantErr:  errs.ErrDifferentSchema,
		},
		{
			name:     "排序列为空",
			children: []Executor{child},
			wantErr:  errs.ErrEmptySortColumns,
		},
		{
			name:     "排序列越界",
			children: []Executor{child},
			sortCols: []SortColumn{NewSortColumn(5, ASC)},
			wantErr:  errs.NewInvalidSortColumnError(5, 1),
		},
		{
			name:     "排序列重复",
			children: []Executor{child},
			sortCols: []SortColumn{NewSortColumn(0, ASC), NewSortColumn(0, DESC)},
			wantErr:  errs.NewRepeatSortColumnError(0),
		},
		{
			name:     "output size limit 非法",
			children: []Executor{child},
			sortCols: []SortColumn{NewSortColumn(0, ASC)},
			opts:     []MergeSortOption{MergeSortWithOutputSizeLimit(0)},
			wantErr:  errs.NewInvalidOutputSizeLimitError(0),
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMergeSort(tc.children, tc.sortCols, tc.opts...)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestMergeSort_OpenError(t *testing.T) {
	mockErr := errors.New("mock: 打不开")
	ok := NewMockExecutor(int64Schema())
	bad := NewMockExecutor(int64Schema()).InjectOpenErr(mockErr)
	exec, err := NewMergeSort([]Executor{ok, bad}, []SortColumn{NewSortColumn(0, ASC)})
	require.NoError(t, err)
	assert.Equal(t, mockErr, exec.Open(context.Background()))
}

func TestMergeSort_Close(t *testing.T) {
	left := NewMockExecutor(int64Schema())
	right := NewMockExecutor(int64Schema())
	exec, err := NewMergeSort([]Executor{left, right}, []SortColumn{NewSortColumn(0, ASC)})
	require.NoError(t, err)
	require.NoError(t, exec.Open(context.Background()))
	require.NoError(t, exec.Close())
	assert.True(t, left.Closed())
	assert.True(t, right.Closed())
	// Close 幂等
	require.NoError(t, exec.Close())

	_, err = exec.Next(context.Background())
	assert.Equal(t, errs.ErrExecutorClosed, err)
}

// 归并之后直接接分组聚合，各路只要局部有序就能得到全局结果
func TestMergeSort_IntoSortAgg(t *testing.T) {
	sch := types.NewSchema(
		types.NewUnnamedField(types.Int32),
		types.NewUnnamedField(types.Int32),
	)
	left := NewMockExecutor(sch, chunk.MustParse(`i i
     1 1
     3 2`))
	right := NewMockExecutor(sch, chunk.MustParse(`i i
     2 1
     4 3`))
	merged, err := NewMergeSort([]Executor{left, right},
		[]SortColumn{NewSortColumn(1, ASC)})
	require.NoError(t, err)
	exec, err := NewSortAgg(merged,
		[]agg.Call{{
			Kind:       agg.Sum,
			Args:       []agg.Arg{{Index: 0, Type: types.Int32}},
			ReturnType: types.Int64,
		}},
		[]expr.Expression{expr.NewInputRef(1, types.Int32)})
	require.NoError(t, err)

	got := collectAll(t, exec)
	require.Len(t, got, 1)
	assert.Equal(t, i32s(1, 2, 3), array.Datums(got[0].ColumnAt(0)))
	assert.Equal(t, i64s(3, 3, 4), array.Datums(got[0].ColumnAt(1)))
}
