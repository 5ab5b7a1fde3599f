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

// Expression 作用在 Chunk 上的标量表达式。
// 实现见 internal/expr 包，这里只开放列引用和比较表达式
type Expression = expr.Expression

// valueOf 区分表达式和普通值，普通值按 typ 解释成常量
func valueOf(val any, typ DataType) Expression {
	switch v := val.(type) {
	case Expression:
		return v
	default:
		return expr.NewLiteral(v, typ)
	}
}
