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

func threeInt32Schema() types.Schema {
	return types.NewSchema(
		types.NewUnnamedField(types.Int32),
		types.NewUnnamedField(types.Int32),
		types.NewUnnamedField(types.Int32),
	)
}

func countStarCall() agg.Call {
	return agg.Call{Kind: agg.Count, ReturnType: types.Int64}
}

func sumCall(idx int) agg.Call {
	return agg.Call{
		Kind:       agg.Sum,
		Args:       []agg.Arg{{Index: idx, Type: types.Int32}},
		ReturnType: types.Int64,
	}
}

func groupByCols() []expr.Expression {
	return []expr.Expression{
		expr.NewInputRef(1, types.Int32),
		expr.NewInputRef(2, types.Int32),
	}
}

func collectAll(t *testing.T, e Executor) []*chunk.Chunk {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.Open(ctx))
	var res []*chunk.Chunk
	for {
		c, err := e.Next(ctx)
		require.NoError(t, err)
		if c == nil {
			break
		}
		res = append(res, c)
	}
	require.NoError(t, e.Close())
	return res
}

func i32s(vs ...int32) []any {
	res := make([]any, 0, len(vs))
	for _, v := range vs {
		res = append(res, v)
	}
	return res
}

func i64s(vs ...int64) []any {
	res := make([]any, 0, len(vs))
	for _, v := range vs {
		res = append(res, v)
	}
	return res
}

func TestSortAggExecutor(t *testing.T) {
	testcases := []struct {
		name     string
		input    []string
		calls    []agg.Call
		groupKey []expr.Expression
		limit    int
		// want[i][j] 第 i 个输出 Chunk 的第 j 列
		want [][][]any
	}{
		{
			name: "全局 COUNT 星号",
			input: []string{
				`i i i
                 1 1 7
                 2 1 8
                 3 3 8
                 4 3 9`,
				`i i i
                 1 3 9
                 2 4 9
                 3 4 9
                 4 5 9`,
				`i i i
                 1 5 9
                 2 5 9
                 3 5 9
                 4 5 9`,
			},
			calls: []agg.Call{countStarCall()},
			limit: 3,
			want: [][][]any{
				{i64s(12)},
			},
		},
		{
			name: "分组 COUNT 星号，每批正好装满",
			input: []string{
				`i i i
                 1 1 7
                 2 1 8
                 3 3 8
                 4 3 9
                 5 4 9`,
				`i i i
                 1 4 9
                 2 4 9
                 3 4 9
                 4 5 9
                 5 6 9
                 6 7 9
                 7 7 9
                 8 8 9`,
				`i i i
                 1 8 9
                 2 8 9
                 3 8 9
                 4 8 9
                 5 8 9`,
			},
			calls:    []agg.Call{countStarCall()},
			groupKey: groupByCols(),
			limit:    3,
			want: [][][]any{
				{i32s(1, 1, 3), i32s(7, 8, 8), i64s(1, 1, 1)},
				{i32s(3, 4, 5), i32s(9, 9, 9), i64s(1, 4, 1)},
				{i32s(6, 7, 8), i32s(9, 9, 9), i64s(1, 2, 6)},
			},
		},
		{
			name: "全局 SUM",
			input: []string{
				`i
                 1
                 2
                 3
                 4
                 5
                 6
                 7
                 8
                 9
                 10`,
			},
			calls: []agg.Call{sumCall(0)},
			limit: 4,
			want: [][][]any{
				{i64s(55)},
			},
		},
		{
			name: "分组 SUM，分组跨 Chunk 续算",
			input: []string{
				`i i i
                 1 1 7
                 2 1 8
                 3 3 8
                 4 3 9`,
				`i i i
                 1 3 9
                 2 4 9
                 3 4 9
                 4 5 9`,
				`i i i
                 1 5 9
                 2 5 9
                 3 5 9
                 4 5 9`,
			},
			calls:    []agg.Call{sumCall(0)},
			groupKey: groupByCols(),
			limit:    4,
			want: [][][]any{
				{i32s(1, 1, 3, 3), i32s(7, 8, 8, 9), i64s(1, 2, 3, 5)},
				{i32s(4, 5), i32s(9, 9), i64s(5, 14)},
			},
		},
		{
			name: "分组 SUM，组数超过批容量",
			input: []string{
				`i  i  i
                 1  1  7
                 2  1  8
                 3  3  8
                 4  3  8
                 5  4  9
                 6  4  9
                 7  5  9
                 8  5  9
                 9  6 10
                 10 6 10`,
				`i  i  i
                 1  6 10
                 2  7 12`,
			},
			calls:    []agg.Call{sumCall(0)},
			groupKey: groupByCols(),
			limit:    3,
			want: [][][]any{
				{i32s(1, 1, 3), i32s(7, 8, 8), i64s(1, 2, 7)},
				{i32s(4, 5, 6), i32s(9, 9, 10), i64s(11, 15, 20)},
				{i32s(7), i32s(12), i64s(2)},
			},
		},
		{
			name: "多个聚合同时算",
			input: []string{
				`i i i
                 1 1 7
                 2 1 7
                 3 2 7`,
			},
			calls:    []agg.Call{countStarCall(), sumCall(0)},
			groupKey: []expr.Expression{expr.NewInputRef(1, types.Int32)},
			limit:    4,
			want: [][][]any{
				{i32s(1, 2), i64s(2, 1), i64s(3, 3)},
			},
		},
		{
			name: "NULL 分组键自成一组",
			input: []string{
				`i i
                 1 .
                 2 .
                 3 5`,
			},
			calls:    []agg.Call{sumCall(0)},
			groupKey: []expr.Expression{expr.NewInputRef(1, types.Int32)},
			limit:    4,
			want: [][][]any{
				{{nil, int32(5)}, i64s(3, 3)},
			},
		},
		{
			name: "不可见行先被压实掉",
			input: []string{
				`i i
                 1 1
                 2 1 D
                 3 2`,
			},
			calls:    []agg.Call{sumCall(0)},
			groupKey: []expr.Expression{expr.NewInputRef(1, types.Int32)},
			limit:    4,
			want: [][][]any{
				{i32s(1, 2), i64s(1, 3)},
			},
		},
		{
			name: "空 Chunk 不影响结果",
			input: []string{
				`i i
                 1 1`,
				`i i
                 2 1 D`,
				`i i
                 3 2`,
			},
			calls:    []agg.Call{sumCall(0)},
			groupKey: []expr.Expression{expr.NewInputRef(1, types.Int32)},
			limit:    4,
			want: [][][]any{
				{i32s(1, 2), i64s(1, 3)},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			chunks := make([]*chunk.Chunk, 0, len(tc.input))
			for _, text := range tc.input {
				chunks = append(chunks, chunk.MustParse(text))
			}
			first := chunk.MustParse(tc.input[0])
			fields := make([]types.Field, 0, first.ColumnCount())
			for i := 0; i < first.ColumnCount(); i++ {
				fields = append(fields, types.NewUnnamedField(first.ColumnAt(i).Type()))
			}
			child := NewMockExecutor(types.NewSchema(fields...), chunks...)

			exec, err := NewSortAgg(child, tc.calls, tc.groupKey, WithOutputSizeLimit(tc.limit))
			require.NoError(t, err)

			got := collectAll(t, exec)
			require.Len(t, got, len(tc.want))
			for i, wantCols := range tc.want {
				require.Equal(t, len(wantCols), got[i].ColumnCount())
				assert.Equal(t, len(wantCols[0]), got[i].Cardinality())
				for j, wantCol := range wantCols {
					assert.Equal(t, wantCol, array.Datums(got[i].ColumnAt(j)))
				}
			}
		})
	}
}

func TestSortAgg_Schema(t *testing.T) {
	child := NewMockExecutor(threeInt32Schema())
	exec, err := NewSortAgg(child, []agg.Call{sumCall(0)}, groupByCols())
	require.NoError(t, err)
	sch := exec.Schema()
	require.Equal(t, 3, sch.Len())
	assert.Equal(t, types.Int32, sch.FieldAt(0).Type)
	assert.Equal(t, types.Int32, sch.FieldAt(1).Type)
	assert.Equal(t, types.Int64, sch.FieldAt(2).Type)
	assert.Equal(t, "SortAggExecutor", exec.Identity())
}

func TestSortAgg_EmptyInput(t *testing.T) {
	testcases := []struct {
		name     string
		input    []string
		calls    []agg.Call
		groupKey []expr.Expression
		want     [][][]any
	}{
		{
			name:     "分组聚合空输入不输出",
			calls:    []agg.Call{countStarCall()},
			groupKey: groupByCols(),
			want:     nil,
		},
		{
			name: "分组聚合只有不可见行也不输出",
			input: []string{
				`i i i
                 1 1 7 D`,
			},
			calls:    []agg.Call{countStarCall()},
			groupKey: groupByCols(),
			want:     nil,
		},
		{
			name:  "全局 COUNT 空输入输出 0",
			calls: []agg.Call{countStarCall()},
			want: [][][]any{
				{i64s(0)},
			},
		},
		{
			name:  "全局 SUM 空输入输出 NULL",
			calls: []agg.Call{sumCall(0)},
			want: [][][]any{
				{{nil}},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			chunks := make([]*chunk.Chunk, 0, len(tc.input))
			for _, text := range tc.input {
				chunks = append(chunks, chunk.MustParse(text))
			}
			child := NewMockExecutor(threeInt32Schema(), chunks...)
			exec, err := NewSortAgg(child, tc.calls, tc.groupKey, WithOutputSizeLimit(3))
			require.NoError(t, err)
			got := collectAll(t, exec)
			require.Len(t, got, len(tc.want))
			for i, wantCols := range tc.want {
				for j, wantCol := range wantCols {
					assert.Equal(t, wantCol, array.Datums(got[i].ColumnAt(j)))
				}
			}
		})
	}
}

func TestSortAgg_WithFilter(t *testing.T) {
	child := NewMockExecutor(threeInt32Schema(), chunk.MustParse(`i i i
     1 1 7
     2 1 7
     3 1 7
     4 2 7`))
	// 只累加 v > 1 的行
	call := sumCall(0).WithFilter(expr.NewComparison(expr.GT,
		expr.NewInputRef(0, types.Int32),
		expr.NewLiteral(int32(1), types.Int32)))
	exec, err := NewSortAgg(child, []agg.Call{call},
		[]expr.Expression{expr.NewInputRef(1, types.Int32)}, WithOutputSizeLimit(4))
	require.NoError(t, err)
	got := collectAll(t, exec)
	require.Len(t, got, 1)
	assert.Equal(t, i32s(1, 2), array.Datums(got[0].ColumnAt(0)))
	assert.Equal(t, i64s(5, 4), array.Datums(got[0].ColumnAt(1)))
}

func TestNewSortAgg_Invalid(t *testing.T) {
	child := NewMockExecutor(threeInt32Schema())
	testcases := []struct {
		name     string
		child    Executor
		calls    []agg.Call
		groupKey []expr.Expression
		opts     []SortAggOption
		wantErr  error
	}{
		{
			name:    "child 为 nil",
			calls:   []agg.Call{countStarCall()},
			wantErr: errs.ErrNilChild,
		},
		{
			name:    "output size limit 为 0",
			child:   child,
			calls:   []agg.Call{countStarCall()},
			opts:    []SortAggOption{WithOutputSizeLimit(0)},
			wantErr: errs.NewInvalidOutputSizeLimitError(0),
		},
		{
			name:    "output size limit 为负",
			child:   child,
			calls:   []agg.Call{countStarCall()},
			opts:    []SortAggOption{WithOutputSizeLimit(-5)},
			wantErr: errs.NewInvalidOutputSizeLimitError(-5),
		},
		{
			name:     "分组键引用越界列",
			child:    child,
			calls:    []agg.Call{countStarCall()},
			groupKey: []expr.Expression{expr.NewInputRef(7, types.Int32)},
			wantErr:  errs.NewInvalidColumnIndexError(7, 3),
		},
		{
			name:  "DISTINCT 聚合",
			child: child,
			calls: []agg.Call{{
				Kind:       agg.Count,
				ReturnType: types.Int64,
				Distinct:   true,
			}},
			wantErr: errs.ErrDistinctUnsupported,
		},
		{
			name:  "聚合返回类型声明错误",
			child: child,
			calls: []agg.Call{{
				Kind:       agg.Sum,
				Args:       []agg.Arg{{Index: 0, Type: types.Int32}},
				ReturnType: types.Int32,
			}},
			wantErr: errs.NewAggReturnTypeError("SUM", types.Int64, types.Int32),
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSortAgg(tc.child, tc.calls, tc.groupKey, tc.opts...)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestSortAgg_Lifecycle(t *testing.T) {
	child := NewMockExecutor(threeInt32Schema(), chunk.MustParse(`i i i
     1 1 7`))
	exec, err := NewSortAgg(child, []agg.Call{countStarCall()}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = exec.Next(ctx)
	assert.Equal(t, errs.ErrExecutorNotOpen, err)

	require.NoError(t, exec.Open(ctx))
	c, err := exec.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, i64s(1), array.Datums(c.ColumnAt(0)))

	require.NoError(t, exec.Close())
	assert.True(t, child.Closed())
	// Close 幂等
	require.NoError(t, exec.Close())

	_, err = exec.Next(ctx)
	assert.Equal(t, errs.ErrExecutorClosed, err)
}

func TestSortAgg_ChildError(t *testing.T) {
	mockErr := errors.New("mock: 上游挂了")

	t.Run("Open 失败", func(t *testing.T) {
		child := NewMockExecutor(threeInt32Schema()).InjectOpenErr(mockErr)
		exec, err := NewSortAgg(child, []agg.Call{countStarCall()}, nil)
		require.NoError(t, err)
		assert.Equal(t, mockErr, exec.Open(context.Background()))
	})

	t.Run("Next 中途失败", func(t *testing.T) {
		child := NewMockExecutor(threeInt32Schema(), chunk.MustParse(`i i i
         1 1 7`)).InjectNextErr(mockErr)
		exec, err := NewSortAgg(child, []agg.Call{countStarCall()}, groupByCols())
		require.NoError(t, err)
		require.NoError(t, exec.Open(context.Background()))
		_, err = exec.Next(context.Background())
		assert.Equal(t, mockErr, err)
	})
}

func TestSortAgg_ContextCanceled(t *testing.T) {
	child := NewMockExecutor(threeInt32Schema(), chunk.MustParse(`i i i
     1 1 7`))
	exec, err := NewSortAgg(child, []agg.Call{countStarCall()}, nil)
	require.NoError(t, err)
	require.NoError(t, exec.Open(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exec.Next(ctx)
	assert.Equal(t, context.Canceled, err)
}
