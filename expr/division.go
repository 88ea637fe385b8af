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

	"github.com/valyala/fastjson"
)

/*
Division divides the results of two expressions. Integer division by zero
is an arithmetic failure. Floating point division follows IEEE 754 (a zero
divisor produces an infinity or NaN).
*/
type Division[N Numeric, L Expression[N], R Expression[N]] struct {
	LHS L
	RHS R
}

/*
NewDivision creates a new division expression.
*/
func NewDivision[N Numeric, L Expression[N], R Expression[N]](lhs L, rhs R) Division[N, L, R] {
	return Division[N, L, R]{lhs, rhs}
}

/*
Evaluate evaluates both operands and divides them.
*/
func (d Division[N, L, R]) Evaluate(bindings *Bindings) (N, error) {
	var ret N

	lhs, rhs, err := evalPair[N](d.LHS, d.RHS, bindings)
	if err != nil {
		return ret, err
	}

	if rhs == 0 && !isFloat[N]() {
		return ret, newEvaluationError(ErrArithmeticFailure, d.PredicateKind(),
			fmt.Sprintf("Division by zero: %v / %v", lhs, rhs))
	}

	return lhs / rhs, nil
}

/*
PredicateKind returns the kind tag of this node.
*/
func (d Division[N, L, R]) PredicateKind() string {
	return kindTag[N]("division")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (d Division[N, L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(d.LHS, d.RHS)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (d *Division[N, L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if d.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			d.RHS, err = DecodeArg[R](dec, args, 1)
		}
	}

	return err
}

/*
RegisterDivision registers divisions over N.
*/
func RegisterDivision[N Numeric](reg *Registry) error {
	return registerKind[Division[N, Expression[N], Expression[N]]](reg)
}

/*
Remainder calculates the remainder of an integer division. A zero divisor
is an arithmetic failure.
*/
type Remainder[N Integer, L Expression[N], R Expression[N]] struct {
	LHS L
	RHS R
}

/*
NewRemainder creates a new remainder expression.
*/
func NewRemainder[N Integer, L Expression[N], R Expression[N]](lhs L, rhs R) Remainder[N, L, R] {
	return Remainder[N, L, R]{lhs, rhs}
}

/*
Evaluate evaluates both operands and calculates the remainder.
*/
func (r Remainder[N, L, R]) Evaluate(bindings *Bindings) (N, error) {
	var ret N

	lhs, rhs, err := evalPair[N](r.LHS, r.RHS, bindings)
	if err != nil {
		return ret, err
	}

	if rhs == 0 {
		return ret, newEvaluationError(ErrArithmeticFailure, r.PredicateKind(),
			fmt.Sprintf("Division by zero: %v %% %v", lhs, rhs))
	}

	return lhs % rhs, nil
}

/*
PredicateKind returns the kind tag of this node.
*/
func (r Remainder[N, L, R]) PredicateKind() string {
	return kindTag[N]("remainder")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (r Remainder[N, L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(r.LHS, r.RHS)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (r *Remainder[N, L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if r.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			r.RHS, err = DecodeArg[R](dec, args, 1)
		}
	}

	return err
}

/*
RegisterRemainder registers remainders over N.
*/
func RegisterRemainder[N Integer](reg *Registry) error {
	return registerKind[Remainder[N, Expression[N], Expression[N]]](reg)
}

/*
evalPair evaluates two operands in order. The second operand is not
evaluated if the first one fails.
*/
func evalPair[T any](lhs Expression[T], rhs Expression[T], bindings *Bindings) (T, T, error) {
	var a, b T

	a, err := lhs.Evaluate(bindings)
	if err == nil {
		b, err = rhs.Evaluate(bindings)
	}

	return a, b, err
}

/*
isFloat checks if N is a floating point type.
*/
func isFloat[N Numeric]() bool {
	var one, two N = 1, 2
	return one/two != 0
}
