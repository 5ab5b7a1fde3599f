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

package types

// Field 输出 schema 里的一列。
// 聚合执行器输出的列都是匿名的，Name 留空即可
type Field struct {
	Type DataType
	Name string
}

func NewField(typ DataType, name string) Field {
	return Field{
		Type: typ,
		Name: name,
	}
}

// NewUnnamedField 构造匿名列
func NewUnnamedField(typ DataType) Field {
	return Field{
		Type: typ,
	}
}

type Schema struct {
	Fields []Field
}

func NewSchema(fields ...Field) Schema {
	return Schema{
		Fields: fields,
	}
}

func (s Schema) Len() int {
	return len(s.Fields)
}

func (s Schema) FieldAt(idx int) Field {
	return s.Fields[idx]
}

// Equal 逐列比较类型和名字
func (s Schema) Equal(other Schema) bool {
	if len(s.Fields) != len(other.Fields) {
		return false
	}
	for idx, f := range s.Fields {
		if f != other.Fields[idx] {
			return false
		}
	}
	return true
}
