// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resources holds the client visible objects of a context group and
// the namespaces that map client ids to them.
package resources

import "sort"

// Object is implemented by every resource held in a Namespace.
type Object interface {
	// ServiceID returns the native name of the object, or 0 if it has none.
	ServiceID() uint32
}

// Namespace maps client ids to objects, with a reverse map from service ids
// back to client ids. Client id 0 is never stored.
type Namespace[T Object] struct {
	objects map[uint32]T
	clients map[uint32]uint32
}

// NewNamespace returns an empty Namespace.
func NewNamespace[T Object]() *Namespace[T] {
	return &Namespace[T]{objects: map[uint32]T{}, clients: map[uint32]uint32{}}
}

// Get returns the object named by client.
func (n *Namespace[T]) Get(client uint32) (T, bool) {
	o, ok := n.objects[client]
	return o, ok
}

// Has returns true if client names a live object.
func (n *Namespace[T]) Has(client uint32) bool {
	_, ok := n.objects[client]
	return ok
}

// Add names obj with client. Adding client id 0 panics.
func (n *Namespace[T]) Add(client uint32, obj T) {
	if client == 0 {
		panic("resources: client id 0 is reserved")
	}
	n.objects[client] = obj
	if s := obj.ServiceID(); s != 0 {
		n.clients[s] = client
	}
}

// Remove drops the name client, returning the object it named.
func (n *Namespace[T]) Remove(client uint32) (T, bool) {
	o, ok := n.objects[client]
	if !ok {
		return o, false
	}
	delete(n.objects, client)
	if s := o.ServiceID(); s != 0 && n.clients[s] == client {
		delete(n.clients, s)
	}
	return o, true
}

// ClientID returns the client id naming the object with the given service id.
func (n *Namespace[T]) ClientID(service uint32) (uint32, bool) {
	c, ok := n.clients[service]
	return c, ok
}

// Len returns the number of live names.
func (n *Namespace[T]) Len() int { return len(n.objects) }

// Each calls fn for every live name in ascending client id order.
func (n *Namespace[T]) Each(fn func(client uint32, obj T)) {
	ids := make([]uint32, 0, len(n.objects))
	for id := range n.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(id, n.objects[id])
	}
}

// CanCreate returns true if every id is non-zero, unique within ids and not
// already live.
func (n *Namespace[T]) CanCreate(ids []uint32) bool {
	seen := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] || n.Has(id) {
			return false
		}
		seen[id] = true
	}
	return true
}
