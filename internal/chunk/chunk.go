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

	"github.com/ecodeclub/ebatch/internal/array"
)

// Chunk 一批行的列式表示。
// vis 为 nil 表示全部行可见，此时 card 等于列长度。
// 列长度不一致属于构造方的编程错误，直接 panic，不做恢复
type Chunk struct {
	columns []array.Array
	vis     []bool
	card    int
}

// New 构造全可见的 Chunk，card 为声明的行数
func New(columns []array.Array, card int) *Chunk {
	for idx, col := range columns {
		if col.Len() != card {
			panic(fmt.Sprintf("ebatch: 第 %d 列长度 %d 与声明的行数 %d 不一致", idx, col.Len(), card))
		}
	}
	return &Chunk{
		columns: columns,
		card:    card,
	}
}

// NewWithVisibility 构造带可见性掩码的 Chunk，
// vis[i] 为 false 的行对下游不可见
func NewWithVisibility(columns []array.Array, vis []bool) *Chunk {
	card := 0
	for _, visible := range vis {
		if visible {
			card++
		}
	}
	for idx, col := range columns {
		if col.Len() != len(vis) {
			panic(fmt.Sprintf("ebatch: 第 %d 列长度 %d 与可见性掩码长度 %d 不一致", idx, col.Len(), len(vis)))
		}
	}
	return &Chunk{
		columns: columns,
		vis:     vis,
		card:    card,
	}
}

// Cardinality 可见行数
func (c *Chunk) Cardinality() int {
	return c.card
}

// Capacity 物理行数，包含不可见行
func (c *Chunk) Capacity() int {
	if len(c.columns) == 0 {
		return c.card
	}
	return c.columns[0].Len()
}

func (c *Chunk) ColumnCount() int {
	return len(c.columns)
}

func (c *Chunk) ColumnAt(idx int) array.Array {
	return c.columns[idx]
}

func (c *Chunk) Columns() []array.Array {
	return c.columns
}

// RowVisible 第 idx 个物理行是否可见
func (c *Chunk) RowVisible(idx int) bool {
	if c.vis == nil {
		return true
	}
	return c.vis[idx]
}

// Compact 物理移除不可见行。
// 全可见时直接返回自身，不发生拷贝
func (c *Chunk) Compact() *Chunk {
	if c.vis == nil {
		return c
	}
	columns := make([]array.Array, 0, len(c.columns))
	for _, col := range c.columns {
		b, err := array.NewBuilder(col.Type(), c.card)
		if err != nil {
			// 列类型在构造时已经合法，这里不可能失败
			panic(err)
		}
		for i := 0; i < col.Len(); i++ {
			if !c.vis[i] {
				continue
			}
			if appendErr := b.Append(col.Datum(i)); appendErr != nil {
				panic(appendErr)
			}
		}
		columns = append(columns, b.Finish())
	}
	return New(columns, c.card)
}
