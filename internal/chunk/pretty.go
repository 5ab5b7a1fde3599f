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

package chunk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/types"
	"github.com/valyala/bytebufferpool"
)

// 文本格式的类型字母，主要服务于测试夹具
var letterToType = map[byte]types.DataType{
	'B': types.Bool,
	's': types.Int16,
	'i': types.Int32,
	'I': types.Int64,
	'f': types.Float32,
	'F': types.Float64,
	'T': types.Varchar,
}

var typeToLetter = map[types.DataType]byte{
	types.Bool:    'B',
	types.Int16:   's',
	types.Int32:   'i',
	types.Int64:   'I',
	types.Float32: 'f',
	types.Float64: 'F',
	types.Varchar: 'T',
}

// MustParse 从文本构造 Chunk。
// 首行是类型字母，之后每行一条数据，"." 表示 NULL，
// 行尾单独的 "D" 标记该行不可见。
// 格式错误直接 panic，这个函数只应该出现在测试里
func MustParse(s string) *Chunk {
	lines := make([]string, 0, 8)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		panic("ebatch: 文本为空，无法解析出 Chunk")
	}

	header := strings.Fields(lines[0])
	typs := make([]types.DataType, 0, len(header))
	for _, h := range header {
		if len(h) != 1 {
			panic(fmt.Sprintf("ebatch: 非法的类型字母 %q", h))
		}
		typ, ok := letterToType[h[0]]
		if !ok {
			panic(fmt.Sprintf("ebatch: 非法的类型字母 %q", h))
		}
		typs = append(typs, typ)
	}

	builders := make([]array.Builder, 0, len(typs))
	for _, typ := range typs {
		b, err := array.NewBuilder(typ, len(lines)-1)
		if err != nil {
			panic(err)
		}
		builders = append(builders, b)
	}

	var vis []bool
	hasInvisible := false
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		visible := true
		if len(fields) == len(typs)+1 {
			if fields[len(fields)-1] != "D" {
				panic(fmt.Sprintf("ebatch: 行 %q 的字段数与类型不匹配", line))
			}
			visible = false
			fields = fields[:len(fields)-1]
		}
		if len(fields) != len(typs) {
			panic(fmt.Sprintf("ebatch: 行 %q 的字段数与类型不匹配", line))
		}
		if !visible {
			hasInvisible = true
		}
		vis = append(vis, visible)
		for idx, field := range fields {
			if field == "." {
				builders[idx].AppendNull()
				continue
			}
			if err := builders[idx].Append(parseDatum(typs[idx], field)); err != nil {
				panic(err)
			}
		}
	}

	columns := make([]array.Array, 0, len(builders))
	for _, b := range builders {
		columns = append(columns, b.Finish())
	}
	if hasInvisible {
		return NewWithVisibility(columns, vis)
	}
	return New(columns, len(vis))
}

func parseDatum(typ types.DataType, field string) any {
	switch typ {
	case types.Bool:
		switch field {
		case "t", "true":
			return true
		case "f", "false":
			return false
		}
		panic(fmt.Sprintf("ebatch: 无法把 %q 解析为 Bool", field))
	case types.Int16:
		v, err := strconv.ParseInt(field, 10, 16)
		if err != nil {
			panic(fmt.Sprintf("ebatch: 无法把 %q 解析为 Int16", field))
		}
		return int16(v)
	case types.Int32:
		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("ebatch: 无法把 %q 解析为 Int32", field))
		}
		return int32(v)
	case types.Int64:
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("ebatch: 无法把 %q 解析为 Int64", field))
		}
		return v
	case types.Float32:
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			panic(fmt.Sprintf("ebatch: 无法把 %q 解析为 Float32", field))
		}
		return float32(v)
	case types.Float64:
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			panic(fmt.Sprintf("ebatch: 无法把 %q 解析为 Float64", field))
		}
		return v
	case types.Varchar:
		return field
	}
	panic(fmt.Sprintf("ebatch: 未知类型 %s", typ))
}

// String 渲染为 MustParse 能接受的文本，方便测试直接比对
func (c *Chunk) String() string {
	buffer := bytebufferpool.Get()
	defer bytebufferpool.Put(buffer)
	for idx, col := range c.columns {
		if idx > 0 {
			_ = buffer.WriteByte(' ')
		}
		letter, ok := typeToLetter[col.Type()]
		if !ok {
			letter = '?'
		}
		_ = buffer.WriteByte(letter)
	}
	_ = buffer.WriteByte('\n')
	for row := 0; row < c.Capacity(); row++ {
		for idx, col := range c.columns {
			if idx > 0 {
				_ = buffer.WriteByte(' ')
			}
			_, _ = buffer.WriteString(formatDatum(col, row))
		}
		if !c.RowVisible(row) {
			_, _ = buffer.WriteString(" D")
		}
		_ = buffer.WriteByte('\n')
	}
	return buffer.String()
}

func formatDatum(col array.Array, row int) string {
	if col.IsNull(row) {
		return "."
	}
	val := col.Datum(row)
	switch v := val.(type) {
	case bool:
		if v {
			return "t"
		}
		return "f"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
