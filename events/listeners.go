// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Listeners registers lists of event listener functions
// to receive different event types.
// Listeners are closure methods with all context captured.
// Event types without listeners are ignored by [Listeners.Call].
type Listeners map[Types][]func(ev Event)

// Init ensures that map is constructed
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Types][]func(Event))
}

// Add adds a function for given type
func (ls *Listeners) Add(typ Types, fun func(Event)) {
	ls.Init()
	(*ls)[typ] = append((*ls)[typ], fun)
}

// Has returns whether there are any listeners for the given type.
func (ls Listeners) Has(typ Types) bool {
	return len(ls[typ]) > 0
}

// Call calls all functions for given event, and returns whether
// any listener was registered for it.
// It goes in _reverse_ order so the last functions added are the first called
// and it stops when the event is marked as Handled.  This allows for a natural
// and optional override behavior.
func (ls Listeners) Call(ev Event) bool {
	if ev.IsHandled() {
		return false
	}
	ets := ls[ev.Type()]
	n := len(ets)
	if n == 0 {
		return false
	}
	for i := n - 1; i >= 0; i-- {
		ets[i](ev)
		if ev.IsHandled() {
			break
		}
	}
	return true
}
