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
	"testing"

	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	testCases := []struct {
		name string
		val  any
		want Expression
	}{
		{
			name: "普通值包装成常量",
			val:  int32(5),
			want: expr.NewLiteral(int32(5), Int32),
		},
		{
			name: "nil 是 NULL 常量",
			val:  nil,
			want: expr.NewLiteral(nil, Int32),
		},
		{
			name: "表达式原样返回",
			val:  C(2, Int32),
			want: C(2, Int32),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, valueOf(tc.val, Int32))
		})
	}
}

// NULL 参与比较的行结果也是 NULL
func TestExpression_NullCompare(t *testing.T) {
	input := chunk.MustParse("i i\n1 3\n. 2\n3 .\n")
	got, err := C(0, Int32).LT(C(1, Int32)).Eval(input)
	require.NoError(t, err)
	assert.Equal(t, []any{true, nil, nil}, array.Datums(got))
}
