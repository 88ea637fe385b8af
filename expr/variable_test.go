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
	"sync"
	"testing"
)

func TestBindings(t *testing.T) {
	var empty *Bindings

	if _, ok := empty.Value("x"); ok || empty.Len() != 0 {
		t.Error("Unexpected result:", ok)
		return
	}

	b := NewBindings().Bind("x", 1).Bind("y", "foo")

	if val, ok := b.Value("y"); !ok || val != "foo" || b.Len() != 2 {
		t.Error("Unexpected result:", val, ok)
		return
	}

	id1 := NewVariableID()
	id2 := NewVariableID()

	if id1 == "" || id1 == id2 {
		t.Error("Unexpected variable ids:", id1, id2)
		return
	}
}

func TestVariable(t *testing.T) {
	id := NewVariableID()
	v := NewVariable[int](id)

	if res, err := v.Evaluate(NewBindings().Bind(id, 42)); err != nil || res != 42 {
		t.Error("Unexpected result:", res, err)
		return
	}

	_, err := v.Evaluate(NewBindings().Bind(id, "42"))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("Unexpected result:", err)
		return
	}

	if err.Error() != "Predicate evaluation error in variable<int>: Type mismatch (Value of "+string(id)+" is a string)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := v.Evaluate(nil); !errors.Is(err, ErrMissingBinding) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestKeyPath(t *testing.T) {
	person := NewVariable[Record]("person")

	bindings := NewBindings().Bind("person", Record{
		"name": "Anne",
		"address": Record{
			"city": "Berlin",
			"zip":  int64(10115),
		},
	})

	if res, err := NewKeyPath[string](person, "address.city").Evaluate(bindings); err != nil || res != "Berlin" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err := NewKeyPath[string](person, "name").Evaluate(bindings); err != nil || res != "Anne" {
		t.Error("Unexpected result:", res, err)
		return
	}

	zipCheck := NewComparison[int64](NewKeyPath[int64](person, "address.zip"), NewValue[int64](10000), GreaterThan)

	if res, err := zipCheck.Evaluate(bindings); err != nil || !res {
		t.Error("Unexpected result:", res, err)
		return
	}

	_, err := NewKeyPath[string](person, "address.street").Evaluate(bindings)
	if !errors.Is(err, ErrMissingBinding) {
		t.Error("Unexpected result:", err)
		return
	}

	if err.Error() != "Predicate evaluation error in keypath<string>: Missing binding (No value at address.street)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := NewKeyPath[int](person, "address.city").Evaluate(bindings); !errors.Is(err, ErrTypeMismatch) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := NewKeyPath[string](person, "name.first").Evaluate(bindings); !errors.Is(err, ErrTypeMismatch) {
		t.Error("Unexpected result:", err)
		return
	}

	// Errors of the root are passed on

	if _, err := NewKeyPath[string](person, "name").Evaluate(nil); !errors.Is(err, ErrMissingBinding) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	pred := NewConjunction(
		NewComparison[int](NewVariable[int]("x"), NewValue(0), GreaterThan),
		NewEqual[int](NewRemainder[int](NewVariable[int]("x"), NewValue(2)), NewValue(0)))

	var wg sync.WaitGroup

	results := make([]bool, 100)
	errs := make([]error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = pred.Evaluate(NewBindings().Bind("x", i))
		}(i)
	}

	wg.Wait()

	for i := 0; i < 100; i++ {
		if errs[i] != nil || results[i] != (i > 0 && i%2 == 0) {
			t.Error("Unexpected result:", i, results[i], errs[i])
			return
		}
	}
}
