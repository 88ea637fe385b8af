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
Conjunction is the logical AND of two boolean expressions. The right
operand is not evaluated if the left operand is false.
*/
type Conjunction[L Expression[bool], R Expression[bool]] struct {
	LHS L
	RHS R
}

/*
NewConjunction creates a new conjunction.
*/
func NewConjunction[L Expression[bool], R Expression[bool]](lhs L, rhs R) Conjunction[L, R] {
	return Conjunction[L, R]{lhs, rhs}
}

/*
Evaluate evaluates the conjunction.
*/
func (c Conjunction[L, R]) Evaluate(bindings *Bindings) (bool, error) {
	res, err := c.LHS.Evaluate(bindings)
	if err != nil || !res {
		return false, err
	}

	return c.RHS.Evaluate(bindings)
}

/*
PredicateKind returns the kind tag of this node.
*/
func (c Conjunction[L, R]) PredicateKind() string {
	return "conjunction"
}

/*
EncodePredicate returns the arguments of this node.
*/
func (c Conjunction[L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(c.LHS, c.RHS)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (c *Conjunction[L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if c.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			c.RHS, err = DecodeArg[R](dec, args, 1)
		}
	}

	return err
}

/*
RegisterConjunction registers conjunctions.
*/
func RegisterConjunction(reg *Registry) error {
	return registerKind[Conjunction[Expression[bool], Expression[bool]]](reg)
}
