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
	"sort"
	"sync"

	"github.com/valyala/fastjson"
)

/*
DecodeFunc decodes the arguments of a node of a registered kind.
*/
type DecodeFunc func(dec *Decoder, args []*fastjson.Value) (interface{}, error)

/*
Registry maps kind tags to decode functions. It is required to decode
trees which contain heterogeneous slots. A registry must be populated with
all node kinds which can appear in a tree before the tree is decoded.
*/
type Registry struct {
	kinds map[string]DecodeFunc // Registered kinds
	lock  *sync.RWMutex         // Lock for kinds
}

/*
NewRegistry creates a new empty registry.
*/
func NewRegistry() *Registry {
	return &Registry{make(map[string]DecodeFunc), &sync.RWMutex{}}
}

/*
Register registers a decode function for a kind tag. Each tag can only be
registered once.
*/
func (r *Registry) Register(kind string, decodeFunc DecodeFunc) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.kinds[kind]; ok {
		return fmt.Errorf("Node kind %v is already registered", kind)
	}

	r.kinds[kind] = decodeFunc

	return nil
}

/*
Lookup returns the decode function of a given kind tag. Lookups on a nil
registry always fail.
*/
func (r *Registry) Lookup(kind string) (DecodeFunc, bool) {
	if r == nil {
		return nil, false
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	decodeFunc, ok := r.kinds[kind]

	return decodeFunc, ok
}

/*
Kinds returns all registered kind tags in alphabetical order. A nil
registry has no kinds.
*/
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}

	r.lock.RLock()
	defer r.lock.RUnlock()

	ret := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		ret = append(ret, k)
	}

	sort.Strings(ret)

	return ret
}

/*
registerKind registers the node type D. Decoded nodes are returned as values.
*/
func registerKind[D any, PD interface {
	*D
	Decodable
}](reg *Registry) error {
	var proto D

	return reg.Register(PD(&proto).PredicateKind(), func(dec *Decoder, args []*fastjson.Value) (interface{}, error) {
		var node D

		if err := PD(&node).DecodePredicate(dec, args); err != nil {
			return nil, err
		}

		return node, nil
	})
}
