/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"
)

const testconf = "testconfig"

const invalidFileName = "**" + "\x00"

func TestConfig(t *testing.T) {

	Config = nil

	ioutil.WriteFile(testconf, []byte(`{
    "MemoryOnlyStorage": true,
    "DecodeCacheMaxSize": 20
}`), 0644)

	defer func() {
		if err := os.Remove(testconf); err != nil {
			fmt.Print("Could not remove test config file:", err.Error())
		}
	}()

	if err := LoadConfigFile(testconf); err != nil {
		t.Error(err)
		return
	}

	if res := Str(MemoryOnlyStorage); res != "true" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(MemoryOnlyStorage); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(DecodeCacheMaxSize); res != 20 {
		t.Error("Unexpected result:", res)
		return
	}

	// Missing values are filled with defaults

	if res := Str(LocationPredicateStore); res != "predicates" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(EnableCompression); !res {
		t.Error("Unexpected result:", res)
		return
	}

	LoadDefaultConfig()

	if res := Str(MemoryOnlyStorage); res != "false" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(DecodeCacheMaxSize); res != 1000 {
		t.Error("Unexpected result:", res)
		return
	}

	Config[DecodeCacheMaxSize] = "123"

	if res := Int(DecodeCacheMaxSize); fmt.Sprint(res) == fmt.Sprint(DefaultConfig[DecodeCacheMaxSize]) {
		t.Error("Unexpected result:", res)
		return
	}

	if err := LoadConfigFile(invalidFileName); err == nil {
		t.Error("Loading an invalid config file should fail")
		return
	}
}

func TestConfigAssertions(t *testing.T) {
	LoadDefaultConfig()

	Config[DecodeCacheMaxSize] = "abc"

	defer func() {
		if r := recover(); r == nil {
			t.Error("Parsing an invalid value should panic")
		}
		LoadDefaultConfig()
	}()

	Int(DecodeCacheMaxSize)
}
