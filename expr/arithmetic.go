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
ArithmeticOperator is the operator of an arithmetic expression.
*/
type ArithmeticOperator int

/*
Available arithmetic operators
*/
const (
	Add ArithmeticOperator = iota
	Subtract
	Multiply
)

var arithmeticOperatorNames = map[ArithmeticOperator]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
}

/*
String returns the tag of this operator.
*/
func (op ArithmeticOperator) String() string {
	if name, ok := arithmeticOperatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("ArithmeticOperator(%d)", int(op))
}

/*
ParseArithmeticOperator returns the operator for a given tag.
*/
func ParseArithmeticOperator(tag string) (ArithmeticOperator, bool) {
	for op, name := range arithmeticOperatorNames {
		if name == tag {
			return op, true
		}
	}
	return 0, false
}

/*
Arithmetic adds, subtracts or multiplies the results of two expressions.
Overflows wrap around as defined for the numeric type.
*/
type Arithmetic[N Numeric, L Expression[N], R Expression[N]] struct {
	Op  ArithmeticOperator
	LHS L
	RHS R
}

/*
NewArithmetic creates a new arithmetic expression.
*/
func NewArithmetic[N Numeric, L Expression[N], R Expression[N]](lhs L, rhs R, op ArithmeticOperator) Arithmetic[N, L, R] {
	return Arithmetic[N, L, R]{op, lhs, rhs}
}

/*
Evaluate evaluates both operands and applies the operator.
*/
func (a Arithmetic[N, L, R]) Evaluate(bindings *Bindings) (N, error) {
	var ret N

	lhs, err := a.LHS.Evaluate(bindings)
	if err != nil {
		return ret, err
	}

	rhs, err := a.RHS.Evaluate(bindings)
	if err != nil {
		return ret, err
	}

	switch a.Op {
	case Add:
		ret = lhs + rhs
	case Subtract:
		ret = lhs - rhs
	case Multiply:
		ret = lhs * rhs
	default:
		err = newEvaluationError(ErrArithmeticFailure, a.PredicateKind(),
			fmt.Sprintf("Unknown operator %v", a.Op))
	}

	return ret, err
}

/*
PredicateKind returns the kind tag of this node.
*/
func (a Arithmetic[N, L, R]) PredicateKind() string {
	return kindTag[N]("arithmetic")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (a Arithmetic[N, L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	if _, ok := arithmeticOperatorNames[a.Op]; !ok {
		return nil, fmt.Errorf("%w: unknown operator %v", ErrNotEncodable, a.Op)
	}

	args, err := enc.Nodes(a.LHS, a.RHS)
	if err != nil {
		return nil, err
	}

	return append(args, enc.String(a.Op.String())), nil
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (a *Arithmetic[N, L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	var tag string

	err := dec.CheckArgs(args, 3)

	if err == nil {
		if a.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			if a.RHS, err = DecodeArg[R](dec, args, 1); err == nil {
				tag, err = dec.DecodeString(args, 2)
			}
		}
	}

	if err == nil {
		var ok bool
		if a.Op, ok = ParseArithmeticOperator(tag); !ok {
			err = dec.NewError(ErrOperatorTagInvalid, tag)
		}
	}

	return err
}

/*
RegisterArithmetic registers arithmetic expressions over N.
*/
func RegisterArithmetic[N Numeric](reg *Registry) error {
	return registerKind[Arithmetic[N, Expression[N], Expression[N]]](reg)
}

/*
UnaryMinus negates the result of an expression.
*/
type UnaryMinus[N Numeric, E Expression[N]] struct {
	Operand E
}

/*
NewUnaryMinus creates a new negation of a numeric expression.
*/
func NewUnaryMinus[N Numeric, E Expression[N]](operand E) UnaryMinus[N, E] {
	return UnaryMinus[N, E]{operand}
}

/*
Evaluate evaluates the operand and negates the result.
*/
func (u UnaryMinus[N, E]) Evaluate(bindings *Bindings) (N, error) {
	val, err := u.Operand.Evaluate(bindings)
	return -val, err
}

/*
PredicateKind returns the kind tag of this node.
*/
func (u UnaryMinus[N, E]) PredicateKind() string {
	return kindTag[N]("unaryminus")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (u UnaryMinus[N, E]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(u.Operand)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (u *UnaryMinus[N, E]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 1)

	if err == nil {
		u.Operand, err = DecodeArg[E](dec, args, 0)
	}

	return err
}

/*
RegisterUnaryMinus registers numeric negations over N.
*/
func RegisterUnaryMinus[N Numeric](reg *Registry) error {
	return registerKind[UnaryMinus[N, Expression[N]]](reg)
}
