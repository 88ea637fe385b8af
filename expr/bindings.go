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

import "github.com/google/uuid"

/*
VariableID identifies a variable of a predicate.
*/
type VariableID string

/*
NewVariableID creates a new unique variable identifier.
*/
func NewVariableID() VariableID {
	return VariableID(uuid.NewString())
}

/*
Bindings holds the values of variables during the evaluation of a predicate.
Bindings are not modified by an evaluation. It is not safe to bind new
values while an evaluation which uses the bindings is running.
*/
type Bindings struct {
	values map[VariableID]interface{}
}

/*
NewBindings creates a new empty bindings object.
*/
func NewBindings() *Bindings {
	return &Bindings{make(map[VariableID]interface{})}
}

/*
Bind binds a value to a variable. Returns the bindings object so calls can
be chained.
*/
func (b *Bindings) Bind(id VariableID, value interface{}) *Bindings {
	b.values[id] = value
	return b
}

/*
Value returns the value bound to a variable.
*/
func (b *Bindings) Value(id VariableID) (interface{}, bool) {
	if b == nil {
		return nil, false
	}

	val, ok := b.values[id]

	return val, ok
}

/*
Len returns the number of bound variables.
*/
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}
