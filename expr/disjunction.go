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
Disjunction is the logical OR of two boolean expressions. The right
operand is not evaluated if the left operand is true.
*/
type Disjunction[L Expression[bool], R Expression[bool]] struct {
	LHS L
	RHS R
}

/*
NewDisjunction creates a new disjunction.
*/
func NewDisjunction[L Expression[bool], R Expression[bool]](lhs L, rhs R) Disjunction[L, R] {
	return Disjunction[L, R]{lhs, rhs}
}

/*
Evaluate evaluates the disjunction.
*/
func (d Disjunction[L, R]) Evaluate(bindings *Bindings) (bool, error) {
	res, err := d.LHS.Evaluate(bindings)
	if err != nil || res {
		return res, err
	}

	return d.RHS.Evaluate(bindings)
}

/*
PredicateKind returns the kind tag of this node.
*/
func (d Disjunction[L, R]) PredicateKind() string {
	return "disjunction"
}

/*
EncodePredicate returns the arguments of this node.
*/
func (d Disjunction[L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(d.LHS, d.RHS)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (d *Disjunction[L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if d.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			d.RHS, err = DecodeArg[R](dec, args, 1)
		}
	}

	return err
}

/*
RegisterDisjunction registers disjunctions.
*/
func RegisterDisjunction(reg *Registry) error {
	return registerKind[Disjunction[Expression[bool], Expression[bool]]](reg)
}
