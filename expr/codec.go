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
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

/*
Encodable is a node which can be written by an Encoder. Every node is
written as a JSON object holding the kind tag of the node and a list of
arguments: {"kind": <tag>, "args": [<children>..., <operator/literal>...]}
*/
type Encodable interface {

	/*
		PredicateKind returns the stable kind tag of this node.
	*/
	PredicateKind() string

	/*
		EncodePredicate returns the arguments of this node.
	*/
	EncodePredicate(enc *Encoder) ([]*fastjson.Value, error)
}

/*
Decodable is a node which can be read by a Decoder.
*/
type Decodable interface {

	/*
		PredicateKind returns the stable kind tag of this node.
	*/
	PredicateKind() string

	/*
		DecodePredicate initialises this node from a list of arguments.
	*/
	DecodePredicate(dec *Decoder, args []*fastjson.Value) error
}

var arenaPool fastjson.ArenaPool
var parserPool fastjson.ParserPool

// Encoding
// ========

/*
Encode encodes a given node and all its children.
*/
func Encode(node interface{}) ([]byte, error) {
	a := arenaPool.Get()
	defer arenaPool.Put(a)

	v, err := (&Encoder{a}).Node(node)
	if err != nil {
		return nil, err
	}

	return v.MarshalTo(nil), nil
}

/*
EncodeTo encodes a given node and writes the result to a writer.
*/
func EncodeTo(w io.Writer, node interface{}) error {
	data, err := Encode(node)

	if err == nil {
		_, err = w.Write(data)
	}

	return err
}

/*
Encoder builds the JSON representation of a predicate tree.
*/
type Encoder struct {
	arena *fastjson.Arena
}

/*
Node encodes a node together with its kind tag.
*/
func (enc *Encoder) Node(node interface{}) (*fastjson.Value, error) {
	e, ok := node.(Encodable)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an encodable node", ErrNotEncodable, node)
	}

	args, err := e.EncodePredicate(enc)
	if err != nil {
		return nil, err
	}

	arr := enc.arena.NewArray()
	for i, arg := range args {
		arr.SetArrayItem(i, arg)
	}

	obj := enc.arena.NewObject()
	obj.Set("kind", enc.arena.NewString(e.PredicateKind()))
	obj.Set("args", arr)

	return obj, nil
}

/*
Nodes encodes a list of child nodes.
*/
func (enc *Encoder) Nodes(nodes ...interface{}) ([]*fastjson.Value, error) {
	ret := make([]*fastjson.Value, 0, len(nodes)+1)

	for _, node := range nodes {
		v, err := enc.Node(node)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}

	return ret, nil
}

/*
String encodes a string argument (e.g. an operator tag).
*/
func (enc *Encoder) String(s string) *fastjson.Value {
	return enc.arena.NewString(s)
}

/*
Literal encodes a literal value. Only booleans, strings and numbers can be
encoded. Floating point values which are not finite are written as strings.
*/
func (enc *Encoder) Literal(val interface{}) (*fastjson.Value, error) {
	a := enc.arena

	switch v := val.(type) {
	case bool:
		if v {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil
	case string:
		return a.NewString(v), nil
	case int:
		return a.NewNumberInt(v), nil
	case int8:
		return a.NewNumberString(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return a.NewNumberString(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return a.NewNumberString(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return a.NewNumberString(strconv.FormatInt(v, 10)), nil
	case uint:
		return a.NewNumberString(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return a.NewNumberString(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return a.NewNumberString(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return a.NewNumberString(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return a.NewNumberString(strconv.FormatUint(v, 10)), nil
	case float32:
		return enc.float(float64(v), 32), nil
	case float64:
		return enc.float(v, 64), nil
	}

	return nil, fmt.Errorf("%w: literal of type %T", ErrNotEncodable, val)
}

func (enc *Encoder) float(f float64, bitSize int) *fastjson.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return enc.arena.NewString(strconv.FormatFloat(f, 'g', -1, bitSize))
	}
	return enc.arena.NewNumberString(strconv.FormatFloat(f, 'g', -1, bitSize))
}

// Decoding
// ========

/*
Decode decodes a predicate tree. If T is a concrete node type then the
structure of the whole tree is known and the kind tags in the data are
only verified. Slots which are typed with an interface (e.g. Expression[bool])
are decoded with the decode function which is registered for the kind tag
found in the data. The registry may be nil if the tree has no such slots.
*/
func Decode[T any](data []byte, registry *Registry) (T, error) {
	var ret T

	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return ret, &DecodeError{ErrMalformedPayload, "/", err.Error()}
	}

	return DecodeNode[T](&Decoder{registry, nil}, v)
}

/*
Decoder reads the JSON representation of a predicate tree.
*/
type Decoder struct {
	registry *Registry // Registry for heterogeneous slots
	position []string  // Current position in the tree
}

/*
Position returns the current position in the decoded tree.
*/
func (dec *Decoder) Position() string {
	return "/" + strings.Join(dec.position, "/")
}

/*
NewError creates a new DecodeError for the current position.
*/
func (dec *Decoder) NewError(t error, detail string) error {
	return &DecodeError{t, dec.Position(), detail}
}

/*
DecodeNode decodes a single node.
*/
func DecodeNode[T any](dec *Decoder, v *fastjson.Value) (T, error) {
	var ret T

	kind, args, err := dec.envelope(v)
	if err != nil {
		return ret, err
	}

	dec.position = append(dec.position, kind)
	defer func() {
		dec.position = dec.position[:len(dec.position)-1]
	}()

	if d, ok := any(&ret).(Decodable); ok {

		// The slot type is fixed - no lookup necessary

		if expected := d.PredicateKind(); expected != kind {
			return ret, dec.NewError(ErrMalformedPayload,
				fmt.Sprintf("Expected node kind %v", expected))
		}

		err = d.DecodePredicate(dec, args)

		return ret, err
	}

	decodeFunc, ok := dec.registry.Lookup(kind)
	if !ok {
		return ret, dec.NewError(ErrUnknownNodeKind, kind)
	}

	res, err := decodeFunc(dec, args)
	if err != nil {
		return ret, err
	}

	if ret, ok = res.(T); !ok {
		return ret, dec.NewError(ErrMalformedPayload,
			fmt.Sprintf("Node of kind %v cannot be used as %v", kind, slotName[T]()))
	}

	return ret, nil
}

/*
DecodeArg decodes the child node at a given argument position.
*/
func DecodeArg[T any](dec *Decoder, args []*fastjson.Value, i int) (T, error) {
	var ret T

	if i >= len(args) {
		return ret, dec.NewError(ErrMalformedPayload, fmt.Sprintf("Missing argument %v", i))
	}

	dec.position = append(dec.position, strconv.Itoa(i))
	defer func() {
		dec.position = dec.position[:len(dec.position)-1]
	}()

	return DecodeNode[T](dec, args[i])
}

/*
DecodeLiteral decodes the literal at a given argument position.
*/
func DecodeLiteral[T any](dec *Decoder, args []*fastjson.Value, i int) (T, error) {
	var ret T
	var err error

	if i >= len(args) {
		return ret, dec.NewError(ErrMalformedPayload, fmt.Sprintf("Missing argument %v", i))
	}

	v := args[i]

	switch p := any(&ret).(type) {
	case *bool:
		*p, err = v.Bool()
	case *string:
		var b []byte
		b, err = v.StringBytes()
		*p = string(b)
	case *int:
		*p, err = v.Int()
	case *int8:
		err = decodeSigned(v, p)
	case *int16:
		err = decodeSigned(v, p)
	case *int32:
		err = decodeSigned(v, p)
	case *int64:
		*p, err = v.Int64()
	case *uint:
		*p, err = v.Uint()
	case *uint8:
		err = decodeUnsigned(v, p)
	case *uint16:
		err = decodeUnsigned(v, p)
	case *uint32:
		err = decodeUnsigned(v, p)
	case *uint64:
		*p, err = v.Uint64()
	case *float32:
		var f float64
		f, err = decodeFloat(v, 32)
		*p = float32(f)
	case *float64:
		*p, err = decodeFloat(v, 64)
	default:
		err = fmt.Errorf("Literals of type %v are not supported", typeName[T]())
	}

	if err != nil {
		return ret, dec.NewError(ErrMalformedPayload, err.Error())
	}

	return ret, nil
}

/*
DecodeString decodes the string argument at a given argument position.
*/
func (dec *Decoder) DecodeString(args []*fastjson.Value, i int) (string, error) {
	return DecodeLiteral[string](dec, args, i)
}

/*
CheckArgs checks the number of arguments of the current node.
*/
func (dec *Decoder) CheckArgs(args []*fastjson.Value, n int) error {
	if len(args) != n {
		return dec.NewError(ErrMalformedPayload,
			fmt.Sprintf("Expected %v arguments but found %v", n, len(args)))
	}
	return nil
}

/*
envelope reads the kind tag and the argument list of an encoded node.
*/
func (dec *Decoder) envelope(v *fastjson.Value) (string, []*fastjson.Value, error) {
	if v.Type() != fastjson.TypeObject {
		return "", nil, dec.NewError(ErrMalformedPayload,
			fmt.Sprintf("Expected node object but found %v", v.Type()))
	}

	kind := v.Get("kind")
	if kind == nil || kind.Type() != fastjson.TypeString {
		return "", nil, dec.NewError(ErrMalformedPayload, "Node has no kind")
	}

	args := v.Get("args")
	if args == nil || args.Type() != fastjson.TypeArray {
		return "", nil, dec.NewError(ErrMalformedPayload, "Node has no argument list")
	}

	kindBytes, _ := kind.StringBytes()
	arr, _ := args.Array()

	return string(kindBytes), arr, nil
}

func decodeSigned[I int8 | int16 | int32](v *fastjson.Value, p *I) error {
	i, err := v.Int64()

	if err == nil {
		if int64(I(i)) != i {
			return fmt.Errorf("Number %v out of range for %T", i, *p)
		}
		*p = I(i)
	}

	return err
}

func decodeUnsigned[I uint8 | uint16 | uint32](v *fastjson.Value, p *I) error {
	i, err := v.Uint64()

	if err == nil {
		if uint64(I(i)) != i {
			return fmt.Errorf("Number %v out of range for %T", i, *p)
		}
		*p = I(i)
	}

	return err
}

func decodeFloat(v *fastjson.Value, bitSize int) (float64, error) {
	if v.Type() == fastjson.TypeString {

		// Non-finite values are written as strings

		b, _ := v.StringBytes()
		f, err := strconv.ParseFloat(string(b), bitSize)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			err = fmt.Errorf("Unexpected string value %q for a number", b)
		}

		return f, err
	}

	return v.Float64()
}

// Type names
// ==========

var recordType = reflect.TypeOf(Record(nil))

/*
typeName returns the name of a value type as it is used in kind tags. The
name is built from the static type so interface types get distinct names.
*/
func typeName[T any]() string {
	if t := reflect.TypeOf((*T)(nil)).Elem(); t != recordType {
		return t.String()
	}

	return "record"
}

/*
slotName returns the name of a slot type (which may be an interface).
*/
func slotName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

/*
kindTag builds the kind tag of a node which depends on a value type.
*/
func kindTag[T any](name string) string {
	return name + "<" + typeName[T]() + ">"
}
