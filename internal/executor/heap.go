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
	"github.com/ecodeclub/ebatch/internal/array"
	"github.com/ecodeclub/ebatch/internal/chunk"
)

// chunkCursor 指向某个子执行器当前 Chunk 里的一行
type chunkCursor struct {
	childIdx int
	chunk    *chunk.Chunk
	row      int
}

type chunkHeap struct {
	cursors  []*chunkCursor
	sortCols []SortColumn
}

func (h *chunkHeap) Len() int {
	return len(h.cursors)
}

func (h *chunkHeap) Less(i, j int) bool {
	return compareCursor(h.cursors[i], h.cursors[j], h.sortCols) < 0
}

func (h *chunkHeap) Swap(i, j int) {
	h.cursors[i], h.cursors[j] = h.cursors[j], h.cursors[i]
}

func (h *chunkHeap) Push(x any) {
	h.cursors = append(h.cursors, x.(*chunkCursor))
}

func (h *chunkHeap) Pop() any {
	v := h.cursors[len(h.cursors)-1]
	h.cursors = h.cursors[:len(h.cursors)-1]
	return v
}

// compareCursor 按排序列逐列比较两行。
// NULL 当成最小值，升序排最前，降序排最后。
// 键完全相等时按 child 的顺序，让归并结果稳定
func compareCursor(a *chunkCursor, b *chunkCursor, sortCols []SortColumn) int {
	for _, sc := range sortCols {
		colA := a.chunk.ColumnAt(sc.index)
		colB := b.chunk.ColumnAt(sc.index)
		va, vb := colA.Datum(a.row), colB.Datum(b.row)
		var cmp int
		switch {
		case va == nil && vb == nil:
			cmp = 0
		case va == nil:
			cmp = -1
		case vb == nil:
			cmp = 1
		default:
			cmp = array.CompareDatum(colA.Type(), va, vb)
		}
		if sc.order == DESC {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp
		}
	}
	return a.childIdx - b.childIdx
}
