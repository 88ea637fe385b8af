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
Equal checks if the results of two expressions are equal.
*/
type Equal[T comparable, L Expression[T], R Expression[T]] struct {
	LHS L
	RHS R
}

/*
NewEqual creates a new equality check.
*/
func NewEqual[T comparable, L Expression[T], R Expression[T]](lhs L, rhs R) Equal[T, L, R] {
	return Equal[T, L, R]{lhs, rhs}
}

/*
Evaluate evaluates both operands and compares them.
*/
func (e Equal[T, L, R]) Evaluate(bindings *Bindings) (bool, error) {
	lhs, rhs, err := evalPair[T](e.LHS, e.RHS, bindings)
	if err != nil {
		return false, err
	}

	return equalValues(e.PredicateKind(), lhs, rhs)
}

/*
PredicateKind returns the kind tag of this node.
*/
func (e Equal[T, L, R]) PredicateKind() string {
	return kindTag[T]("equal")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (e Equal[T, L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(e.LHS, e.RHS)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (e *Equal[T, L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if e.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			e.RHS, err = DecodeArg[R](dec, args, 1)
		}
	}

	return err
}

/*
RegisterEqual registers equality checks over T.
*/
func RegisterEqual[T comparable](reg *Registry) error {
	return registerKind[Equal[T, Expression[T], Expression[T]]](reg)
}

/*
NotEqual checks if the results of two expressions differ.
*/
type NotEqual[T comparable, L Expression[T], R Expression[T]] struct {
	LHS L
	RHS R
}

/*
NewNotEqual creates a new inequality check.
*/
func NewNotEqual[T comparable, L Expression[T], R Expression[T]](lhs L, rhs R) NotEqual[T, L, R] {
	return NotEqual[T, L, R]{lhs, rhs}
}

/*
Evaluate evaluates both operands and compares them.
*/
func (e NotEqual[T, L, R]) Evaluate(bindings *Bindings) (bool, error) {
	lhs, rhs, err := evalPair[T](e.LHS, e.RHS, bindings)
	if err != nil {
		return false, err
	}

	res, err := equalValues(e.PredicateKind(), lhs, rhs)

	return err == nil && !res, err
}

/*
PredicateKind returns the kind tag of this node.
*/
func (e NotEqual[T, L, R]) PredicateKind() string {
	return kindTag[T]("notequal")
}

/*
EncodePredicate returns the arguments of this node.
*/
func (e NotEqual[T, L, R]) EncodePredicate(enc *Encoder) ([]*fastjson.Value, error) {
	return enc.Nodes(e.LHS, e.RHS)
}

/*
DecodePredicate initialises this node from a list of arguments.
*/
func (e *NotEqual[T, L, R]) DecodePredicate(dec *Decoder, args []*fastjson.Value) error {
	err := dec.CheckArgs(args, 2)

	if err == nil {
		if e.LHS, err = DecodeArg[L](dec, args, 0); err == nil {
			e.RHS, err = DecodeArg[R](dec, args, 1)
		}
	}

	return err
}

/*
RegisterNotEqual registers inequality checks over T.
*/
func RegisterNotEqual[T comparable](reg *Registry) error {
	return registerKind[NotEqual[T, Expression[T], Expression[T]]](reg)
}

/*
equalValues compares two values with ==. Interface types (and structs or
arrays holding them) satisfy comparable but can carry dynamic values like
slices or maps for which == panics. Such values are a type mismatch.
*/
func equalValues[T comparable](kind string, lhs, rhs T) (res bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = false
			err = newEvaluationError(ErrTypeMismatch, kind,
				fmt.Sprintf("Values of type %T and %T cannot be compared", lhs, rhs))
		}
	}()

	return lhs == rhs, nil
}
