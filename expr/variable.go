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
Variable refers to a value in the bindings of an evaluation.
*/
type Variable[T any] struct {
	Key VariableID
}

/*
NewVariable creates a new variable reference.
*/
func NewVariable[T any](key VariableID) Variable[T] {
	return Variable[T]{key}
}

/*
Evaluate looks up the value of the variable.
*/
func (v Variable[T]) Evaluate(bindings *Bindings) (T, error) {
	var ret T

	val, ok := bindings.Value(v.Key)
	if !ok {
		return ret, newEvaluationError(ErrMissingBinding, v.PredicateKind(),
			fmt.Sprintf("No value bound to %v", v.Key))
	}

	if ret, ok = val.(T); !ok {
		return ret, newEvaluationError(ErrTypeMismatch, v.PredicateKind(),
			fmt.Sprintf("Value of %v is a %T", v.Key, val))
	}

	return ret, nil
}

/*
PredicateKind returns the kind tag of this node.
*/
func (v Variable[T]) PredicateKind() string {
	return kindTag[T]("variable")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (v Variable[T]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return []*fastjson.Value{enc.String(string(v.Key))}, nil
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (v *Variable[T]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 1)

	if err == nil {
		var key string
		key, err = dec.DecodeString(args, 0)
		v.Key = VariableID(key)
	}

	return err
}

/*
RegisterVariable registers variables of type T.
*/
func RegisterVariable[T any](reg *Registry) error {
	return registerKind[Variable[T]](reg)
}
