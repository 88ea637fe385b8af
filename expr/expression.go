/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package expr contains the expression nodes of typed predicates.

A predicate is a tree of immutable expression nodes. Every node produces a
value of a fixed Go type when it is evaluated against a set of variable
bindings. Composite nodes are generic over the types of their operand
expressions:

	sum := NewArithmetic[int](NewVariable[int]("x"), NewValue(1), Add)
	cond := NewComparison[int](sum, NewValue(10), GreaterThan)

	ok, err := cond.Evaluate(NewBindings().Bind("x", 12))

A tree which is built only from comparable operands is itself comparable.
Two trees can then be compared with == and can be used as map keys. Trees
with non-comparable operands cannot be compared (the compiler rejects it).

Operands which are typed with the interface Expression[T] form
heterogeneous slots. Any node producing a T can be plugged into them. Trees
with heterogeneous slots are decoded with the help of a Registry which maps
node kind tags to decode functions.
*/
package expr

/*
Expression is a node of a predicate tree which produces a value of type T.
*/
type Expression[T any] interface {

	/*
		Evaluate evaluates this expression with the given bindings. A nil
		bindings object is the same as empty bindings.
	*/
	Evaluate(bindings *Bindings) (T, error)
}

/*
Record is a nested attribute structure which can be queried with a KeyPath.
*/
type Record = map[string]interface{}

/*
Integer is the set of all integer types which can be used in arithmetic
expressions.
*/
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

/*
Float is the set of all floating point types.
*/
type Float interface {
	~float32 | ~float64
}

/*
Numeric is the set of all types which support addition, subtraction and
multiplication.
*/
type Numeric interface {
	Integer | Float
}

/*
Ordered is the set of all types which support the ordering operators.
*/
type Ordered interface {
	Numeric | ~string
}
