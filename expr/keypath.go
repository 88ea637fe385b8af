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
	"strings"

	"devt.de/krotik/common/datautil"
	"github.com/valyala/fastjson"
)

/*
KeyPath looks up a nested attribute of a record. The path is a list of
attribute names separated by dots (e.g. "address.city").
*/
type KeyPath[T any, R Expression[Record]] struct {
	Root R
	Path string
}

/*
NewKeyPath creates a new key path expression.
*/
func NewKeyPath[T any, R Expression[Record]](root R, path string) KeyPath[T, R] {
	return KeyPath[T, R]{root, path}
}

/*
Evaluate looks up the attribute in the record produced by the root
expression. A missing or nil attribute is reported as a missing binding.
*/
func (k KeyPath[T, R]) Evaluate(bindings *Bindings) (T, error) {
	var ret T

	rec, err := k.Root.Evaluate(bindings)
	if err != nil {
		return ret, err
	}

	val, err := datautil.GetNestedValue(rec, strings.Split(k.Path, "."))
	if err != nil {
		return ret, newEvaluationError(ErrTypeMismatch, k.PredicateKind(),
			fmt.Sprintf("%v: %v", k.Path, err))
	}

	if val == nil {
		return ret, newEvaluationError(ErrMissingBinding, k.PredicateKind(),
			fmt.Sprintf("No value at %v", k.Path))
	}

	ret, ok := val.(T)
	if !ok {
		return ret, newEvaluationError(ErrTypeMismatch, k.PredicateKind(),
			fmt.Sprintf("Value at %v is a %T", k.Path, val))
	}

	return ret, nil
}

/*
PredicateKind returns the kind tag of this node.
*/
func (k KeyPath[T, R]) PredicateKind() string {
	return kindTag[T]("keypath")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (k KeyPath[T, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	root, err := enc.Node(k.Root)
	if err != nil {
		return nil, err
	}
	return []*fastjson.Value{root, enc.String(k.Path)}, nil
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (k *KeyPath[T, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if k.Root, err = DecodeArg[R](dec, args, 0); err == nil {
			k.Path, err = dec.DecodeString(args, 1)
		}
	}

	return err
}

/*
RegisterKeyPath registers key paths producing T from a record of any
expression.
*/
func RegisterKeyPath[T any](reg *Registry) error {
	return registerKind[KeyPath[T, Expression[Record]]](reg)
}
