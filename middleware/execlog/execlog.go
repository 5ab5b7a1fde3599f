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

package execlog

import (
	"context"
	"log"
	"time"

	"github.com/ecodeclub/ebatch"
)

type MiddlewareBuilder struct {
	logFunc func(identity string, rows int, cost time.Duration)
}

func NewBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(identity string, rows int, cost time.Duration) {
			log.Println(identity, rows, cost)
		},
	}
}

func (b *MiddlewareBuilder) LogFunc(logFunc func(identity string, rows int, cost time.Duration)) *MiddlewareBuilder {
	b.logFunc = logFunc
	return b
}

func (b *MiddlewareBuilder) Build() ebatch.Middleware {
	return func(next ebatch.Executor) ebatch.Executor {
		return &logExecutor{
			Executor: next,
			logFunc:  b.logFunc,
		}
	}
}

// logExecutor 给 Next 计时，其余方法直接透传给被包装的执行器
type logExecutor struct {
	ebatch.Executor
	logFunc func(identity string, rows int, cost time.Duration)
}

func (e *logExecutor) Next(ctx context.Context) (*ebatch.Chunk, error) {
	start := time.Now()
	c, err := e.Executor.Next(ctx)
	if err != nil {
		return nil, err
	}
	rows := 0
	if c != nil {
		rows = c.Cardinality()
	}
	e.logFunc(e.Identity(), rows, time.Since(start))
	return c, nil
}
