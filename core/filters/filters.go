/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package filters renders the inputs shown in a grid's filter row. Widgets
// are looked up by Kind in a Registry when the grid is configured, so an
// unknown kind fails before anything is rendered.
package filters

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/markup"
)

// ErrUnknownKind is returned by Resolve for kinds nobody registered.
var ErrUnknownKind = errors.New("unknown filter kind")

// Kind names a filter widget.
type Kind string

const (
	KindText         Kind = "text"
	KindSelect       Kind = "select"
	KindCheckbox     Kind = "checkbox"
	KindCheckboxList Kind = "checkboxlist"
	KindRadio        Kind = "radio"
)

// Option is one choice of a multi-option filter.
type Option struct {
	Value string
	Label string
}

// Input is what a widget needs to render one filter cell.
type Input struct {
	Name      string   // form field name
	Attribute string   // model attribute being filtered
	Values    []string // current filter values
	Options   []Option // choices; nil for free-form filters
	Prompt    string   // empty choice label for selects
	HTML      markup.Options
}

// Selected reports whether value is among the current values.
func (in Input) Selected(value string) bool {
	for _, v := range in.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Value returns the first current value.
func (in Input) Value() string {
	if len(in.Values) == 0 {
		return ""
	}
	return in.Values[0]
}

// Widget renders a filter input.
type Widget interface {
	Render(in Input) (safehtml.HTML, error)
}

// WidgetFunc adapts a function to Widget.
type WidgetFunc func(in Input) (safehtml.HTML, error)

// Render implements Widget.
func (f WidgetFunc) Render(in Input) (safehtml.HTML, error) {
	return f(in)
}

// Factory creates a widget.
type Factory func() (Widget, error)

type entry struct {
	factory      Factory
	needsOptions bool
}

// Registry maps kinds to widget factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]entry
}

// NewRegistry returns a registry holding the built-in widgets.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[Kind]entry)}
	r.register(KindText, func() (Widget, error) { return WidgetFunc(renderText), nil }, false)
	r.register(KindSelect, func() (Widget, error) { return WidgetFunc(renderSelect), nil }, true)
	r.register(KindCheckbox, func() (Widget, error) { return WidgetFunc(renderCheckbox), nil }, false)
	r.register(KindCheckboxList, func() (Widget, error) { return WidgetFunc(renderCheckboxList), nil }, true)
	r.register(KindRadio, func() (Widget, error) { return WidgetFunc(renderRadioList), nil }, true)
	return r
}

// Register adds or replaces a widget kind.
func (r *Registry) Register(kind Kind, factory Factory) {
	r.register(kind, factory, false)
}

func (r *Registry) register(kind Kind, factory Factory, needsOptions bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[kind] = entry{factory: factory, needsOptions: needsOptions}
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Resolve creates the widget for kind. hasOptions tells whether the column
// supplies choices; kinds that cannot render without them fail here.
func (r *Registry) Resolve(kind Kind, hasOptions bool) (Widget, error) {
	r.mu.RLock()
	e, ok := r.entries[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, string(kind))
	}
	if e.needsOptions && !hasOptions {
		return nil, fmt.Errorf("filter kind %q requires options", string(kind))
	}
	w, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("filter kind %q: %w", string(kind), err)
	}
	return w, nil
}
