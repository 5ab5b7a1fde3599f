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
	"database/sql"

	"github.com/ecodeclub/ebatch/internal/executor"
)

type (
	// Executor 是所有批式执行器要实现的接口。
	// 约定见 internal/executor 包
	Executor = executor.Executor

	// SortAggExecutor 流式分组聚合执行器
	SortAggExecutor = executor.SortAggExecutor
	// FilterExecutor 按条件过滤行的执行器
	FilterExecutor = executor.FilterExecutor
	// MergeSortExecutor 多路归并排序执行器
	MergeSortExecutor = executor.MergeSortExecutor
	// SQLScanExecutor 从数据库读数据的执行器
	SQLScanExecutor = executor.SQLScanExecutor

	SortAggOption   = executor.SortAggOption
	FilterOption    = executor.FilterOption
	MergeSortOption = executor.MergeSortOption
	SQLScanOption   = executor.SQLScanOption

	// Order 排序方向
	Order = executor.Order
	// SortColumn 归并排序的排序列
	SortColumn = executor.SortColumn
)

const (
	ASC  = executor.ASC
	DESC = executor.DESC

	// DefaultOutputSizeLimit 输出 Chunk 的默认行数上限
	DefaultOutputSizeLimit = executor.DefaultOutputSizeLimit
)

// NewSortAgg 创建流式分组聚合执行器，
// 要求 child 的输出已经按照 groupKey 排好序。
// groupKey 为空则整个输入算一个组
func NewSortAgg(child Executor, calls []AggCall, groupKey []Expression, opts ...SortAggOption) (*SortAggExecutor, error) {
	return executor.NewSortAgg(child, calls, groupKey, opts...)
}

// NewFilter 创建过滤执行器，cond 必须返回 Bool
func NewFilter(child Executor, cond Expression, opts ...FilterOption) (*FilterExecutor, error) {
	return executor.NewFilter(child, cond, opts...)
}

// NewMergeSort 创建多路归并排序执行器，
// 要求每一个 child 的输出都已经按 sortCols 排好序
func NewMergeSort(children []Executor, sortCols []SortColumn, opts ...MergeSortOption) (*MergeSortExecutor, error) {
	return executor.NewMergeSort(children, sortCols, opts...)
}

// NewSQLScan 创建数据库扫描执行器，
// sch 按顺序声明查询结果每一列的类型
func NewSQLScan(db *sql.DB, query string, args []any, sch Schema, opts ...SQLScanOption) (*SQLScanExecutor, error) {
	return executor.NewSQLScan(db, query, args, sch, opts...)
}

// NewSortColumn 创建排序列
func NewSortColumn(index int, order Order) SortColumn {
	return executor.NewSortColumn(index, order)
}

// WithOutputSizeLimit 设置 SortAgg 输出 Chunk 的行数上限
func WithOutputSizeLimit(limit int) SortAggOption {
	return executor.WithOutputSizeLimit(limit)
}

// WithIdentity 设置 SortAgg 的标识，日志中用来区分执行器
func WithIdentity(identity string) SortAggOption {
	return executor.WithIdentity(identity)
}

// FilterWithIdentity 设置 Filter 的标识
func FilterWithIdentity(identity string) FilterOption {
	return executor.FilterWithIdentity(identity)
}

// MergeSortWithOutputSizeLimit 设置 MergeSort 输出 Chunk 的行数上限
func MergeSortWithOutputSizeLimit(limit int) MergeSortOption {
	return executor.MergeSortWithOutputSizeLimit(limit)
}

// MergeSortWithIdentity 设置 MergeSort 的标识
func MergeSortWithIdentity(identity string) MergeSortOption {
	return executor.MergeSortWithIdentity(identity)
}

// SQLScanWithOutputSizeLimit 设置 SQLScan 输出 Chunk 的行数上限
func SQLScanWithOutputSizeLimit(limit int) SQLScanOption {
	return executor.SQLScanWithOutputSizeLimit(limit)
}

// SQLScanWithIdentity 设置 SQLScan 的标识
func SQLScanWithIdentity(identity string) SQLScanOption {
	return executor.SQLScanWithIdentity(identity)
}
