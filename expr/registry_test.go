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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/valyala/fastjson"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	if err := RegisterConjunction(reg); err != nil {
		t.Error(err)
		return
	}

	if err := RegisterArithmetic[int](reg); err != nil {
		t.Error(err)
		return
	}

	if err := RegisterConjunction(reg); err == nil || err.Error() != "Node kind conjunction is already registered" {
		t.Error("Unexpected result:", err)
		return
	}

	if diff := cmp.Diff([]string{"arithmetic<int>", "conjunction"}, reg.Kinds()); diff != "" {
		t.Error("Unexpected kinds:", diff)
		return
	}

	if _, ok := reg.Lookup("disjunction"); ok {
		t.Error("Unexpected lookup result")
		return
	}

	// Custom decode functions

	err := reg.Register("answer", func(dec *Decoder, args []*fastjson.Value) (interface{}, error) {
		return NewValue(42), dec.CheckArgs(args, 0)
	})
	if err != nil {
		t.Error(err)
		return
	}

	res, err := Decode[Expression[int]]([]byte(`{"kind":"answer","args":[]}`), reg)
	if err != nil || res != Expression[int](NewValue(42)) {
		t.Error("Unexpected result:", res, err)
		return
	}
}

func TestRegistryInterfaceKinds(t *testing.T) {
	reg := NewRegistry()

	if err := RegisterVariable[any](reg); err != nil {
		t.Error(err)
		return
	}

	if err := RegisterVariable[error](reg); err != nil {
		t.Error(err)
		return
	}

	if err := RegisterValue[any](reg); err != nil {
		t.Error(err)
		return
	}

	if diff := cmp.Diff([]string{"value<interface {}>", "variable<error>", "variable<interface {}>"}, reg.Kinds()); diff != "" {
		t.Error("Unexpected kinds:", diff)
		return
	}

	if res := NewValue[any](1).PredicateKind(); res != "value<interface {}>" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := (Value[error]{}).PredicateKind(); res != "value<error>" {
		t.Error("Unexpected result:", res)
		return
	}

	data, err := Encode(NewVariable[error]("e"))
	if err != nil || string(data) != `{"kind":"variable<error>","args":["e"]}` {
		t.Error("Unexpected result:", string(data), err)
		return
	}

	res, err := Decode[interface{}](data, reg)
	if err != nil || res != interface{}(NewVariable[error]("e")) {
		t.Error("Unexpected result:", res, err)
		return
	}

	// A nil registry has no kinds

	var nilReg *Registry

	if kinds := nilReg.Kinds(); len(kinds) != 0 {
		t.Error("Unexpected result:", kinds)
		return
	}
}

func TestStandardKinds(t *testing.T) {
	reg := newStandardRegistry(t)

	kinds := reg.Kinds()

	if len(kinds) != 50 {
		t.Error("Unexpected number of kinds:", len(kinds), kinds)
		return
	}

	for _, kind := range []string{"conjunction", "disjunction", "negation", "value<int64>",
		"arithmetic<float64>", "comparison<string>", "remainder<int>", "keypath<record>",
		"variable<record>", "conditional<bool>", "notequal<string>"} {

		if _, ok := reg.Lookup(kind); !ok {
			t.Error("Kind should be registered:", kind)
			return
		}
	}

	// Registering twice reports all duplicates

	err := RegisterStandardKinds(reg)
	if err == nil || !strings.HasPrefix(err.Error(), "Node kind conjunction is already registered; ") {
		t.Error("Unexpected result:", err)
		return
	}
}
