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
Value is a literal value.
*/
type Value[T any] struct {
	Val T
}

/*
NewValue creates a new literal expression.
*/
func NewValue[T any](val T) Value[T] {
	return Value[T]{val}
}

/*
Evaluate returns the literal value.
*/
func (v Value[T]) Evaluate(bindings *Bindings) (T, error) {
	return v.Val, nil
}

/*
PredicateKind returns the kind tag of this node.
*/
func (v Value[T]) PredicateKind() string {
	return kindTag[T]("value")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (v Value[T]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	lit, err := enc.Literal(v.Val)
	if err != nil {
		return nil, err
	}
	return []*fastjson.Value{lit}, nil
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (v *Value[T]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 1)

	if err == nil {
		v.Val, err = DecodeLiteral[T](dec, args, 0)
	}

	return err
}

/*
RegisterValue registers literals of type T.
*/
func RegisterValue[T any](reg *Registry) error {
	return registerKind[Value[T]](reg)
}
