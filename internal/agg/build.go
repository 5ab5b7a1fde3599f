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

package agg

import (
	"github.com/ecodeclub/ebatch/internal/errs"
	"github.com/ecodeclub/ebatch/internal/expr"
	"github.com/ecodeclub/ebatch/internal/types"
)

// Build 校验聚合描述并构造一个全新的累加器。
// 每个分组都应该调用一次拿到干净的状态，累加器之间不共享任何东西
func Build(call Call, sch types.Schema) (State, error) {
	if call.Distinct {
		return nil, errs.ErrDistinctUnsupported
	}
	if len(call.OrderBy) > 0 {
		return nil, errs.ErrOrderByUnsupported
	}
	if err := validateArgs(call, sch); err != nil {
		return nil, err
	}
	derived, err := ReturnTypeOf(call.Kind, call.Args)
	if err != nil {
		return nil, err
	}
	if call.ReturnType != derived {
		return nil, errs.NewAggReturnTypeError(string(call.Kind), derived, call.ReturnType)
	}

	var state State
	switch call.Kind {
	case Count:
		state = newCountState(call.Args)
	case Sum:
		state, err = newSumState(call.Args[0])
	case Min:
		state = newExtremeState(call.Args[0], -1)
	case Max:
		state = newExtremeState(call.Args[0], 1)
	case Avg:
		state = newAvgState(call.Args[0])
	default:
		return nil, errs.NewUnsupportedAggKindError(string(call.Kind))
	}
	if err != nil {
		return nil, err
	}

	if call.Filter != nil {
		if validateErr := expr.Validate(call.Filter, sch); validateErr != nil {
			return nil, validateErr
		}
		if got := call.Filter.ReturnType(); got != types.Bool {
			return nil, errs.NewFilterTypeError(got)
		}
		state = &filterState{
			cond:  call.Filter,
			inner: state,
		}
	}
	return state, nil
}

func validateArgs(call Call, sch types.Schema) error {
	switch call.Kind {
	case Count:
		if len(call.Args) > 1 {
			return errs.NewAggArgsCountError(string(call.Kind), len(call.Args))
		}
	case Sum, Min, Max, Avg:
		if len(call.Args) != 1 {
			return errs.NewAggArgsCountError(string(call.Kind), len(call.Args))
		}
	default:
		return errs.NewUnsupportedAggKindError(string(call.Kind))
	}
	for _, arg := range call.Args {
		if arg.Index < 0 || arg.Index >= sch.Len() {
			return errs.NewInvalidColumnIndexError(arg.Index, sch.Len())
		}
		if got := sch.FieldAt(arg.Index).Type; got != arg.Type {
			return errs.NewTypeMismatchError(arg.Type, got)
		}
	}
	return nil
}

// BuildAll 为一批聚合描述构造互相独立的累加器
func BuildAll(calls []Call, sch types.Schema) ([]State, error) {
	states := make([]State, 0, len(calls))
	for _, call := range calls {
		state, err := Build(call, sch)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}
