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
	"testing"

	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
	"github.com/gotomicro/ekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilder(t *testing.T) {
	testcases := []struct {
		name    string
		typ     types.DataType
		wantErr error
	}{
		{
			name: "Bool",
			typ:  types.Bool,
		},
		{
			name: "Int16",
			typ:  types.Int16,
		},
		{
			name: "Int32",
			typ:  types.Int32,
		},
		{
			name: "Int64",
			typ:  types.Int64,
		},
		{
			name: "Float32",
			typ:  types.Float32,
		},
		{
			name: "Float64",
			typ:  types.Float64,
		},
		{
			name: "Varchar",
			typ:  types.Varchar,
		},
		{
			name:    "未知类型",
			typ:     types.Invalid,
			wantErr: errs.NewUnknownDataTypeError(types.Invalid),
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBuilder(tc.typ, 1)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.typ, b.Type())
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestBuilder_Append(t *testing.T) {
	testcases := []struct {
		name       string
		typ        types.DataType
		input      []any
		wantErr    error
		wantDatums []any
	}{
		{
			name:       "值和 nil 混合",
			typ:        types.Int64,
			input:      []any{int64(1), nil, int64(3)},
			wantDatums: []any{int64(1), nil, int64(3)},
		},
		{
			name:       "指针写入",
			typ:        types.Int32,
			input:      []any{ekit.ToPtr[int32](7), (*int32)(nil), ekit.ToPtr[int32](9)},
			wantDatums: []any{int32(7), nil, int32(9)},
		},
		{
			name:       "字符串",
			typ:        types.Varchar,
			input:      []any{"hello", nil, ""},
			wantDatums: []any{"hello", nil, ""},
		},
		{
			name:    "类型对不上",
			typ:     types.Int64,
			input:   []any{int32(1)},
			wantErr: errs.NewAppendTypeError(int32(1), types.Int64),
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBuilder(tc.typ, 1)
			require.NoError(t, err)
			for _, val := range tc.input {
				err = b.Append(val)
				if err != nil {
					break
				}
			}
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			got := b.Finish()
			assert.Equal(t, tc.typ, got.Type())
			assert.Equal(t, tc.wantDatums, Datums(got))
		})
	}
}

func TestBuilder_AppendNull(t *testing.T) {
	b, err := NewBuilder(types.Float64, 1)
	require.NoError(t, err)
	b.AppendNull()
	require.NoError(t, b.Append(float64(3.5)))
	b.AppendNull()
	got := b.Finish()
	assert.Equal(t, 3, got.Len())
	assert.True(t, got.IsNull(0))
	assert.False(t, got.IsNull(1))
	assert.True(t, got.IsNull(2))
	assert.Equal(t, []any{nil, 3.5, nil}, Datums(got))
}

// 容量从 1 开始按需增长
func TestBuilder_Grow(t *testing.T) {
	b, err := NewBuilder(types.Int32, 1)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, b.Append(int32(i)))
	}
	got := b.Finish()
	assert.Equal(t, 100, got.Len())
	assert.Equal(t, int32(99), got.(*Int32Array).Value(99))
}
