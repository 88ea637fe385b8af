/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"devt.de/krotik/predicate/config"
	"devt.de/krotik/predicate/expr"
	"devt.de/krotik/predicate/store"
)

const multiplyExpr = `{"kind":"arithmetic<int>","args":[{"kind":"value<int>","args":[3]},{"kind":"value<int>","args":[4]},"multiply"]}`

const adultExpr = `{"kind":"conjunction","args":[
  {"kind":"comparison<int>","args":[{"kind":"variable<int>","args":["age"]},{"kind":"value<int>","args":[18]},"greaterThanOrEqual"]},
  {"kind":"equal<string>","args":[{"kind":"keypath<string>","args":[{"kind":"variable<record>","args":["user"]},"address.country"]},{"kind":"value<string>","args":["NZ"]}]}
]}`

func writeTestFile(t *testing.T, dir string, name string, content string) string {
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func setupTestConfig(t *testing.T) string {
	dir := t.TempDir()

	config.LoadDefaultConfig()
	config.Config[config.LocationPredicateStore] = filepath.Join(dir, "store")

	t.Cleanup(config.LoadDefaultConfig)

	return dir
}

func TestEvalCommand(t *testing.T) {
	dir := setupTestConfig(t)

	var out bytes.Buffer

	mulFile := writeTestFile(t, dir, "mul.json", multiplyExpr)

	if err := runCommand([]string{"eval", "-expr", mulFile}, &out); err != nil || out.String() != "12\n" {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	adultFile := writeTestFile(t, dir, "adult.json", adultExpr)
	bindingsFile := writeTestFile(t, dir, "bindings.json",
		`{"age": 21, "user": {"name": "Kim", "address": {"country": "NZ"}}}`)

	out.Reset()

	if err := runCommand([]string{"eval", "-expr", adultFile, "-bindings", bindingsFile}, &out); err != nil || out.String() != "true\n" {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	// A float is not accepted for an integer variable

	floatFile := writeTestFile(t, dir, "float.json", `{"age": 21.5, "user": {}}`)

	if err := runCommand([]string{"eval", "-expr", adultFile, "-bindings", floatFile}, &out); !errors.Is(err, expr.ErrTypeMismatch) {
		t.Error("Unexpected result:", err)
		return
	}

	if err := runCommand([]string{"eval", "-expr", adultFile}, &out); !errors.Is(err, expr.ErrMissingBinding) {
		t.Error("Unexpected result:", err)
		return
	}

	badFile := writeTestFile(t, dir, "bad.json", `[1, 2]`)

	if err := runCommand([]string{"eval", "-expr", adultFile, "-bindings", badFile}, &out); err == nil {
		t.Error("Bindings which are not an object should fail")
		return
	}

	if err := runCommand([]string{"eval", "-expr", badFile}, &out); !errors.Is(err, expr.ErrMalformedPayload) {
		t.Error("Unexpected result:", err)
		return
	}

	if err := runCommand([]string{"eval"}, &out); !errors.Is(err, ErrUsage) {
		t.Error("Unexpected result:", err)
		return
	}

	if err := runCommand([]string{"foo"}, &out); err == nil || err.Error() != "Invalid usage: unknown command foo" {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestBindingValue(t *testing.T) {
	dir := t.TempDir()

	b, err := loadBindings(writeTestFile(t, dir, "b.json",
		`{"i": 5, "f": 1.5, "e": 1e3, "s": "x", "t": true, "n": null, "l": [1, "a"], "r": {"k": false}}`))
	if err != nil {
		t.Error(err)
		return
	}

	if b.Len() != 8 {
		t.Error("Unexpected result:", b.Len())
		return
	}

	for k, expected := range map[expr.VariableID]string{
		"i": "int 5",
		"f": "float64 1.5",
		"e": "float64 1000",
		"s": "string x",
		"t": "bool true",
		"n": "<nil> <nil>",
		"l": "[]interface {} [1 a]",
		"r": "map[string]interface {} map[k:false]",
	} {
		v, _ := b.Value(k)
		if res := fmt.Sprintf("%T %v", v, v); res != expected {
			t.Error("Unexpected result:", k, res)
			return
		}
	}

	if _, err := loadBindings(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Missing file should fail")
		return
	}
}

func TestFingerprintCommand(t *testing.T) {
	dir := setupTestConfig(t)

	var out bytes.Buffer

	mulFile := writeTestFile(t, dir, "mul.json", multiplyExpr)

	if err := runCommand([]string{"fingerprint", "-expr", mulFile}, &out); err != nil {
		t.Error(err)
		return
	}

	fp, _ := expr.Fingerprint(expr.NewArithmetic[int](expr.NewValue(3), expr.NewValue(4), expr.Multiply))

	if res := out.String(); res != fmt.Sprintf("%08x\n", fp) {
		t.Error("Unexpected result:", res)
		return
	}

	// Formatting of the file does not matter

	out.Reset()

	spacedFile := writeTestFile(t, dir, "spaced.json", " "+multiplyExpr+"\n")

	if err := runCommand([]string{"fingerprint", "-expr", spacedFile}, &out); err != nil || out.String() != fmt.Sprintf("%08x\n", fp) {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	if err := runCommand([]string{"fingerprint"}, &out); !errors.Is(err, ErrUsage) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestStoreCommand(t *testing.T) {
	dir := setupTestConfig(t)

	var out bytes.Buffer

	adultFile := writeTestFile(t, dir, "adult.json", adultExpr)
	mulFile := writeTestFile(t, dir, "mul.json", multiplyExpr)

	for _, args := range [][]string{
		{"store", "put", "-name", "adult", "-expr", adultFile},
		{"store", "put", "-name", "mul", "-expr", mulFile},
	} {
		if err := runCommand(args, &out); err != nil {
			t.Error(err)
			return
		}
	}

	if err := runCommand([]string{"store", "list"}, &out); err != nil || out.String() != "adult\nmul\n" {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	out.Reset()

	if err := runCommand([]string{"store", "get", "-name", "mul"}, &out); err != nil || out.String() != multiplyExpr+"\n" {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	out.Reset()

	if err := runCommand([]string{"eval", "-name", "mul"}, &out); err != nil || out.String() != "12\n" {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	out.Reset()

	if err := runCommand([]string{"fingerprint", "-name", "mul"}, &out); err != nil {
		t.Error(err)
		return
	}

	fp, _ := expr.Fingerprint(expr.NewArithmetic[int](expr.NewValue(3), expr.NewValue(4), expr.Multiply))

	if res := out.String(); res != fmt.Sprintf("%08x\n", fp) {
		t.Error("Unexpected result:", res)
		return
	}

	if err := runCommand([]string{"store", "remove", "-name", "mul"}, &out); err != nil {
		t.Error(err)
		return
	}

	if err := runCommand([]string{"store", "remove", "-name", "mul"}, &out); !errors.Is(err, store.ErrNotFound) {
		t.Error("Unexpected result:", err)
		return
	}

	out.Reset()

	if err := runCommand([]string{"store", "list"}, &out); err != nil || out.String() != "adult\n" {
		t.Error("Unexpected result:", out.String(), err)
		return
	}

	for _, args := range [][]string{
		{"store"},
		{"store", "get"},
		{"store", "put", "-name", "x"},
		{"store", "frobnicate", "-name", "x"},
	} {
		if err := runCommand(args, &out); !errors.Is(err, ErrUsage) {
			t.Error("Unexpected result:", args, err)
			return
		}
	}

	if err := runCommand([]string{"store", "put", "-name", "bad name", "-expr", mulFile}, &out); !errors.Is(err, store.ErrInvalidName) {
		t.Error("Unexpected result:", err)
		return
	}
}
