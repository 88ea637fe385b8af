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

import "github.com/valyala/fastjson"

/*
Conditional selects one of two expressions depending on a test. Only the
selected expression is evaluated.
*/
type Conditional[T any, C Expression[bool], A Expression[T], B Expression[T]] struct {
	Test       C
	TrueValue  A
	FalseValue B
}

/*
NewConditional creates a new conditional expression.
*/
func NewConditional[T any, C Expression[bool], A Expression[T], B Expression[T]](test C, trueValue A, falseValue B) Conditional[T, C, A, B] {
	return Conditional[T, C, A, B]{test, trueValue, falseValue}
}

/*
Evaluate evaluates the test and then the selected expression.
*/
func (c Conditional[T, C, A, B]) Evaluate(bindings *Bindings) (T, error) {
	var ret T

	res, err := c.Test.Evaluate(bindings)
	if err != nil {
		return ret, err
	}

	if res {
		return c.TrueValue.Evaluate(bindings)
	}

	return c.FalseValue.Evaluate(bindings)
}

/*
PredicateKind returns the kind tag of this node.
*/
func (c Conditional[T, C, A, B]) PredicateKind() string {
	return kindTag[T]("conditional")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (c Conditional[T, C, A, B]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(c.Test, c.TrueValue, c.FalseValue)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (c *Conditional[T, C, A, B]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 3)

	if err == nil {
		if c.Test, err = DecodeArg[C](dec, args, 0); err == nil {
			if c.TrueValue, err = DecodeArg[A](dec, args, 1); err == nil {
				c.FalseValue, err = DecodeArg[B](dec, args, 2)
			}
		}
	}

	return err
}

/*
RegisterConditional registers conditionals producing T.
*/
func RegisterConditional[T any](reg *Registry) error {
	return registerKind[Conditional[T, Expression[bool], Expression[T], Expression[T]]](reg)
}
