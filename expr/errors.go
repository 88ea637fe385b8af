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
	"errors"
	"fmt"
)

/*
Evaluation related error types
*/
var (
	ErrMissingBinding    = errors.New("Missing binding")
	ErrTypeMismatch      = errors.New("Type mismatch")
	ErrArithmeticFailure = errors.New("Arithmetic failure")
)

/*
Decoding related error types
*/
var (
	ErrUnknownNodeKind    = errors.New("Unknown node kind")
	ErrMalformedPayload   = errors.New("Malformed payload")
	ErrOperatorTagInvalid = errors.New("Invalid operator tag")
)

/*
ErrNotEncodable is returned when a node or literal cannot be encoded.
*/
var ErrNotEncodable = errors.New("Not encodable")

/*
EvaluationError is an error which occurred during the evaluation of an
expression. It is raised by the node which detected the problem and passed
on unchanged by all its parent nodes.
*/
type EvaluationError struct {
	Type   error  // Error type (to be used for equal checks)
	Kind   string // Kind of the node which raised the error
	Detail string // Details of this error
}

/*
newEvaluationError creates a new EvaluationError object.
*/
func newEvaluationError(t error, kind string, detail string) error {
	return &EvaluationError{t, kind, detail}
}

/*
Error returns a human-readable string representation of this error.
*/
func (ee *EvaluationError) Error() string {
	return fmt.Sprintf("Predicate evaluation error in %s: %v (%v)", ee.Kind, ee.Type, ee.Detail)
}

/*
Unwrap returns the error type.
*/
func (ee *EvaluationError) Unwrap() error {
	return ee.Type
}

/*
DecodeError is an error which occurred while decoding a predicate tree.
*/
type DecodeError struct {
	Type     error  // Error type (to be used for equal checks)
	Position string // Position of the node in the tree
	Detail   string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (de *DecodeError) Error() string {
	return fmt.Sprintf("Predicate decode error at %s: %v (%v)", de.Position, de.Type, de.Detail)
}

/*
Unwrap returns the error type.
*/
func (de *DecodeError) Unwrap() error {
	return de.Type
}
