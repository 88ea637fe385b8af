/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package expr

import (
	"fmt"

	"devt.de/krotik/common/errorutil"
)

/*
RegisterStandardKinds registers all node kinds for the standard value types
bool, int, int64, float64 and string. Variables and key paths are also
registered for records.
*/
func RegisterStandardKinds(reg *Registry) error {
	ce := errorutil.NewCompositeError()

	add := func(errs ...error) {
		for _, err := range errs {
			if err != nil {
				ce.Add(err)
			}
		}
	}

	add(RegisterConjunction(reg), RegisterDisjunction(reg), RegisterNegation(reg))

	add(registerBasic[bool](reg)...)
	add(registerBasic[string](reg)...)
	add(registerBasic[int](reg)...)
	add(registerBasic[int64](reg)...)
	add(registerBasic[float64](reg)...)

	add(RegisterComparison[string](reg))
	add(registerNumeric[int](reg)...)
	add(registerNumeric[int64](reg)...)
	add(registerNumeric[float64](reg)...)
	add(RegisterRemainder[int](reg), RegisterRemainder[int64](reg))

	add(RegisterVariable[Record](reg), RegisterKeyPath[Record](reg))

	if ce.HasErrors() {
		return ce
	}

	return nil
}

func registerBasic[T comparable](reg *Registry) []error {
	return []error{
		RegisterValue[T](reg),
		RegisterVariable[T](reg),
		RegisterKeyPath[T](reg),
		RegisterEqual[T](reg),
		RegisterNotEqual[T](reg),
		RegisterConditional[T](reg),
	}
}

func registerNumeric[N Numeric](reg *Registry) []error {
	return []error{
		RegisterArithmetic[N](reg),
		RegisterDivision[N](reg),
		RegisterUnaryMinus[N](reg),
		RegisterComparison[N](reg),
	}
}

/*
EvaluateAny evaluates an expression which produces one of the standard
value types. This is useful for trees which were decoded into an
interface{} slot.
*/
func EvaluateAny(node interface{}, bindings *Bindings) (interface{}, error) {
	switch e := node.(type) {
	case Expression[bool]:
		return e.Evaluate(bindings)
	case Expression[string]:
		return e.Evaluate(bindings)
	case Expression[int]:
		return e.Evaluate(bindings)
	case Expression[int64]:
		return e.Evaluate(bindings)
	case Expression[float64]:
		return e.Evaluate(bindings)
	case Expression[Record]:
		return e.Evaluate(bindings)
	}

	return nil, newEvaluationError(ErrTypeMismatch, fmt.Sprintf("%T", node),
		"Not an expression of a standard type")
}
