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
	"github.com/ecodeclub/ebatch/internal/types"
)

// DefaultOutputSizeLimit 输出 Chunk 的默认行数上限
const DefaultOutputSizeLimit = 1024

// Executor 拉取式执行器。
// 按 Open、若干次 Next、Close 的顺序使用，
// Next 返回 (nil, nil) 表示数据耗尽。
// 所有实现都不是并发安全的
type Executor interface {
	// Schema 输出数据的 schema，构造之后就可以调用，不需要先 Open
	Schema() types.Schema
	// Identity 执行器的标识，日志和排查问题的时候用
	Identity() string
	Open(ctx context.Context) error
	Next(ctx context.Context) (*chunk.Chunk, error)
	Close() error
}
