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

// Package ebatch 是一个批式执行引擎。数据以 Chunk 为单位在执行器之间流动，
// 核心执行器 SortAgg 对已经按分组键排好序的输入做流式分组聚合。
package ebatch

import (
	"github.com/ecodeclub/ebatch/internal/agg"
	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/types"
)

type (
	// Chunk 是一批列存储的行，执行器之间交换数据的单位
	Chunk = chunk.Chunk

	// DataType 列的数据类型
	DataType = types.DataType

	// Field schema 里面的一列
	Field = types.Field

	// Schema 描述执行器输出的列
	Schema = types.Schema

	// AggCall 对一次聚合调用的描述
	AggCall = agg.Call
)

// 支持的数据类型
const (
	Bool    = types.Bool
	Int16   = types.Int16
	Int32   = types.Int32
	Int64   = types.Int64
	Float32 = types.Float32
	Float64 = types.Float64
	Varchar = types.Varchar
)

// NewField 创建带名字的列
func NewField(typ DataType, name string) Field {
	return types.NewField(typ, name)
}

// NewSchema 创建 Schema
func NewSchema(fields ...Field) Schema {
	return types.NewSchema(fields...)
}
