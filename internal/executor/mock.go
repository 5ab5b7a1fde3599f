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

	"github.com/ecodeclub/ebatch/internal/chunk"
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/types"
)

// MockExecutor 把预先放好的 Chunk 依次吐出去，测试专用。
// 可以注入错误来模拟上游失败
type MockExecutor struct {
	schema  types.Schema
	chunks  []*chunk.Chunk
	pos     int
	opened  bool
	closed  bool
	openErr error
	// nextErr 在数据吐完之后返回
	nextErr error
}

func NewMockExecutor(sch types.Schema, chunks ...*chunk.Chunk) *MockExecutor {
	return &MockExecutor{
		schema: sch,
		chunks: chunks,
	}
}

// Add 追加一个待吐出的 Chunk
func (e *MockExecutor) Add(c *chunk.Chunk) *MockExecutor {
	e.chunks = append(e.chunks, c)
	return e
}

func (e *MockExecutor) InjectOpenErr(err error) *MockExecutor {
	e.openErr = err
	return e
}

func (e *MockExecutor) InjectNextErr(err error) *MockExecutor {
	e.nextErr = err
	return e
}

func (e *MockExecutor) Schema() types.Schema {
	return e.schema
}

func (e *MockExecutor) Identity() string {
	return "MockExecutor"
}

func (e *MockExecutor) Open(_ context.Context) error {
	if e.openErr != nil {
		return e.openErr
	}
	e.opened = true
	return nil
}

func (e *MockExecutor) Next(ctx context.Context) (*chunk.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.closed {
		return nil, errs.ErrExecutorClosed
	}
	if !e.opened {
		return nil, errs.ErrExecutorNotOpen
	}
	if e.pos < len(e.chunks) {
		c := e.chunks[e.pos]
		e.pos++
		return c, nil
	}
	if e.nextErr != nil {
		return nil, e.nextErr
	}
	return nil, nil
}

func (e *MockExecutor) Close() error {
	e.closed = true
	return nil
}

// Closed 测试里面断言资源释放用
func (e *MockExecutor) Closed() bool {
	return e.closed
}
