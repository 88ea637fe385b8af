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
Predicate is a command line tool to evaluate, fingerprint and store
encoded predicate trees.

Bindings are given as a JSON object which maps variable names to values.
Integral numbers are bound as int and all other numbers as float64. Nested
objects are bound as records which can be accessed with key paths.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"devt.de/krotik/common/logutil"
	"devt.de/krotik/predicate/config"
	"devt.de/krotik/predicate/expr"
	"devt.de/krotik/predicate/store"
	"devt.de/krotik/predicate/version"
	"github.com/valyala/fastjson"
)

/*
ErrUsage is returned if a command was called with invalid arguments.
*/
var ErrUsage = errors.New("Invalid usage")

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {
		fmt.Println(fmt.Sprintf("Usage of %s <command>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("Typed predicate tool %v.%v", version.VERSION, version.REV))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    eval          Evaluate an encoded predicate")
		fmt.Println("    fingerprint   Calculate the fingerprint of a predicate")
		fmt.Println("    store         Manage the predicate store (put, get, list, remove)")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	// Parse the command bit

	err := flag.CommandLine.Parse(os.Args[1:])

	if len(flag.Args()) > 0 {

		if err = config.LoadConfigFile(config.DefaultConfigFile); err == nil {

			logutil.GetLogger("predicate").AddLogSink(
				logutil.StringToLoglevel(config.Str(config.LogLevel)),
				logutil.ConsoleFormatter(), os.Stderr)

			err = runCommand(flag.Args(), os.Stdout)
		}

		if err != nil {
			if errors.Is(err, ErrUsage) {
				flag.Usage()
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

	} else if err == nil {

		flag.Usage()
	}
}

/*
runCommand runs a single command. The first argument is the command name.
*/
func runCommand(args []string, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "eval":
		return runEval(args[1:], out)
	case "fingerprint":
		return runFingerprint(args[1:], out)
	case "store":
		return runStore(args[1:], out)
	}

	return fmt.Errorf("%w: unknown command %v", ErrUsage, args[0])
}

/*
runEval decodes a predicate from a file and evaluates it.
*/
func runEval(args []string, out io.Writer) error {
	fs := newFlagSet("eval", out)

	exprFile := fs.String("expr", "", "File containing the encoded predicate")
	name := fs.String("name", "", "Name of a stored predicate (instead of -expr)")
	bindingsFile := fs.String("bindings", "", "File containing the bindings as JSON object")

	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := newStandardRegistry()
	if err != nil {
		return err
	}

	var node interface{}

	if *name != "" {
		s := store.NewStoreFromConfig(reg)
		defer s.Close()

		node, err = store.Get[interface{}](s, *name)

	} else if *exprFile != "" {
		var data []byte

		if data, err = os.ReadFile(*exprFile); err == nil {
			node, err = expr.Decode[interface{}](data, reg)
		}

	} else {
		return fmt.Errorf("%w: eval requires -expr or -name", ErrUsage)
	}

	if err != nil {
		return err
	}

	bindings := expr.NewBindings()

	if *bindingsFile != "" {
		if bindings, err = loadBindings(*bindingsFile); err != nil {
			return err
		}
	}

	res, err := expr.EvaluateAny(node, bindings)
	if err == nil {
		_, err = fmt.Fprintln(out, res)
	}

	return err
}

/*
runFingerprint prints the fingerprint of a predicate.
*/
func runFingerprint(args []string, out io.Writer) error {
	var fp uint32

	fs := newFlagSet("fingerprint", out)

	exprFile := fs.String("expr", "", "File containing the encoded predicate")
	name := fs.String("name", "", "Name of a stored predicate (instead of -expr)")

	err := fs.Parse(args)
	if err != nil {
		return err
	}

	if *name != "" {
		s := store.NewStoreFromConfig(nil)
		defer s.Close()

		fp, err = s.Fingerprint(*name)

	} else if *exprFile != "" {
		var reg *expr.Registry

		if reg, err = newStandardRegistry(); err == nil {
			fp, err = fingerprintFile(*exprFile, reg)
		}

	} else {
		return fmt.Errorf("%w: fingerprint requires -expr or -name", ErrUsage)
	}

	if err == nil {
		_, err = fmt.Fprintf(out, "%08x\n", fp)
	}

	return err
}

/*
fingerprintFile calculates the fingerprint of a predicate in a file. The
predicate is decoded and encoded again so that formatting differences of
the file do not change the result.
*/
func fingerprintFile(filename string, reg *expr.Registry) (uint32, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, err
	}

	node, err := expr.Decode[interface{}](data, reg)
	if err != nil {
		return 0, err
	}

	return expr.Fingerprint(node)
}

/*
runStore runs a store sub command.
*/
func runStore(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: store requires a sub command", ErrUsage)
	}

	fs := newFlagSet("store "+args[0], out)

	name := fs.String("name", "", "Name of the predicate")
	exprFile := fs.String("expr", "", "File containing the encoded predicate (put only)")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	reg, err := newStandardRegistry()
	if err != nil {
		return err
	}

	s := store.NewStoreFromConfig(reg)
	defer s.Close()

	if args[0] != "list" && *name == "" {
		return fmt.Errorf("%w: store %v requires -name", ErrUsage, args[0])
	}

	switch args[0] {

	case "put":
		var data []byte
		var node interface{}

		if *exprFile == "" {
			return fmt.Errorf("%w: store put requires -expr", ErrUsage)
		}

		if data, err = os.ReadFile(*exprFile); err == nil {
			if node, err = expr.Decode[interface{}](data, reg); err == nil {
				err = s.Put(*name, node)
			}
		}

	case "get":
		var node interface{}

		if node, err = store.Get[interface{}](s, *name); err == nil {
			if err = expr.EncodeTo(out, node); err == nil {
				_, err = fmt.Fprintln(out)
			}
		}

	case "list":
		var names []string

		if names, err = s.Names(); err == nil {
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
		}

	case "remove":
		var ok bool

		if ok, err = s.Remove(*name); err == nil && !ok {
			err = fmt.Errorf("%w: %v", store.ErrNotFound, *name)
		}

	default:
		err = fmt.Errorf("%w: unknown store command %v", ErrUsage, args[0])
	}

	return err
}

/*
loadBindings reads bindings from a JSON file.
*/
func loadBindings(filename string) (*expr.Bindings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("Could not parse bindings: %v", err)
	}

	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("Bindings must be a JSON object: %v", err)
	}

	bindings := expr.NewBindings()

	obj.Visit(func(key []byte, bv *fastjson.Value) {
		var val interface{}

		if err == nil {
			if val, err = bindingValue(bv); err == nil {
				bindings.Bind(expr.VariableID(key), val)
			}
		}
	})

	return bindings, err
}

/*
bindingValue converts a JSON value into a binding value.
*/
func bindingValue(v *fastjson.Value) (interface{}, error) {
	switch v.Type() {

	case fastjson.TypeTrue:
		return true, nil

	case fastjson.TypeFalse:
		return false, nil

	case fastjson.TypeString:
		sb, _ := v.StringBytes()
		return string(sb), nil

	case fastjson.TypeNumber:
		if !strings.ContainsAny(v.String(), ".eE") {
			return v.Int()
		}
		return v.Float64()

	case fastjson.TypeObject:
		var err error

		obj, _ := v.Object()
		rec := make(expr.Record)

		obj.Visit(func(key []byte, ov *fastjson.Value) {
			if err == nil {
				rec[string(key)], err = bindingValue(ov)
			}
		})

		return rec, err

	case fastjson.TypeArray:
		arr, _ := v.Array()
		ret := make([]interface{}, len(arr))

		for i, av := range arr {
			var err error

			if ret[i], err = bindingValue(av); err != nil {
				return nil, err
			}
		}

		return ret, nil
	}

	return nil, nil
}

func newStandardRegistry() (*expr.Registry, error) {
	reg := expr.NewRegistry()
	return reg, expr.RegisterStandardKinds(reg)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
