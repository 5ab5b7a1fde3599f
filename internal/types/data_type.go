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

import "fmt"

// DataType 列的数据类型。
// 这是一个封闭集合，所有按类型分发的地方都以它为键
type DataType uint8

const (
	Invalid DataType = iota
	Bool
	Int16
	Int32
	Int64
	Float32
	Float64
	Varchar
)

func (t DataType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Varchar:
		return "Varchar"
	default:
		return fmt.Sprintf("Invalid(%d)", uint8(t))
	}
}

// IsNumeric 是否数值类型，SUM 和 AVG 只接受数值参数
func (t DataType) IsNumeric() bool {
	switch t {
	case Int16, Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}
