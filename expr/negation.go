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
Negation is the logical NOT of a boolean expression.
*/
type Negation[E Expression[bool]] struct {
	Operand E
}

/*
NewNegation creates a new negation.
*/
func NewNegation[E Expression[bool]](operand E) Negation[E] {
	return Negation[E]{operand}
}

/*
Evaluate evaluates the negation.
*/
func (n Negation[E]) Evaluate(bindings *Bindings) (bool, error) {
	res, err := n.Operand.Evaluate(bindings)
	return err == nil && !res, err
}

/*
PredicateKind returns the kind tag of this node.
*/
func (n Negation[E]) PredicateKind() string {
	return "negation"
}

/*
EncodePredicate returns the arguments of this node.
*/
func (n Negation[E]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(n.Operand)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (n *Negation[E]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 1)

	if err == nil {
		n.Operand, err = DecodeArg[E](dec, args, 0)
	}

	return err
}

/*
RegisterNegation registers negations.
*/
func RegisterNegation(reg *Registry) error {
	return registerKind[Negation[Expression[bool]]](reg)
}
