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
ComparisonOperator is the operator of a comparison expression.
*/
type ComparisonOperator int

/*
Available comparison operators
*/
const (
	LessThan ComparisonOperator = iota
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

var comparisonOperatorNames = map[ComparisonOperator]string{
	LessThan:           "lessThan",
	LessThanOrEqual:    "lessThanOrEqual",
	GreaterThan:        "greaterThan",
	GreaterThanOrEqual: "greaterThanOrEqual",
}

/*
String returns the tag of this operator.
*/
func (op ComparisonOperator) String() string {
	if name, ok := comparisonOperatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("ComparisonOperator(%d)", int(op))
}

/*
ParseComparisonOperator returns the operator for a given tag.
*/
func ParseComparisonOperator(tag string) (ComparisonOperator, bool) {
	for op, name := range comparisonOperatorNames {
		if name == tag {
			return op, true
		}
	}
	return 0, false
}

/*
Comparison compares the results of two expressions.
*/
type Comparison[T Ordered, L Expression[T], R Expression[T]] struct {
	Op  ComparisonOperator
	LHS L
	RHS R
}

/*
NewComparison creates a new comparison expression.
*/
func NewComparison[T Ordered, L Expression[T], R Expression[T]](lhs L, rhs R, op ComparisonOperator) Comparison[T, L, R] {
	return Comparison[T, L, R]{op, lhs, rhs}
}

/*
Evaluate evaluates both operands and compares them.
*/
func (c Comparison[T, L, R]) Evaluate(bindings *Bindings) (bool, error) {
	lhs, rhs, err := evalPair[T](c.LHS, c.RHS, bindings)
	if err != nil {
		return false, err
	}

	switch c.Op {
	case LessThan:
		return lhs < rhs, nil
	case LessThanOrEqual:
		return lhs <= rhs, nil
	case GreaterThan:
		return lhs > rhs, nil
	case GreaterThanOrEqual:
		return lhs >= rhs, nil
	}

	return false, newEvaluationError(ErrTypeMismatch, c.PredicateKind(),
		fmt.Sprintf("Unknown operator %v", c.Op))
}

/*
PredicateKind returns the kind tag of this node.
*/
func (c Comparison[T, L, R]) PredicateKind() string {
	return kindTag[T]("comparison")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (c Comparison[T, L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	if _, ok := comparisonOperatorNames[c.Op]; !ok {
		return nil, fmt.Errorf("%w: unknown operator %v", ErrNotEncodable, c.Op)
	}

	args, err := enc.Nodes(c.LHS, c.RHS)
	if err != nil {
		return nil, err
	}

	return append(args, enc.String(c.Op.String())), nil
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (c *Comparison[T, L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	var tag string

	err := dec.CheckArgs(args, 3)

	if err == nil {
		if c.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			if c.RHS, err = DecodeArg[R](dec, args, 1); err == nil {
				tag, err = dec.DecodeString(args, 2)
			}
		}
	}

	if err == nil {
		var ok bool
		if c.Op, ok = ParseComparisonOperator(tag); !ok {
			err = dec.NewError(ErrOperatorTagInvalid, tag)
		}
	}

	return err
}

/*
RegisterComparison registers comparisons over T.
*/
func RegisterComparison[T Ordered](reg *Registry) error {
	return registerKind[Comparison[T, Expression[T], Expression[T]]](reg)
}
