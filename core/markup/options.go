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

// Package markup holds the HTML attributes of grid cells: CSS classes,
// width style and spans.
package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// HAlign is the horizontal alignment of a column.
type HAlign string

// VAlign is the vertical alignment of a column.
type VAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"

	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "middle"
	AlignBottom VAlign = "bottom"
)

// Validate reports whether a is empty or a known alignment.
func (a HAlign) Validate() error {
	switch a {
	case "", AlignLeft, AlignCenter, AlignRight:
		return nil
	}
	return fmt.Errorf("invalid horizontal alignment %q", string(a))
}

// Validate reports whether a is empty or a known alignment.
func (a VAlign) Validate() error {
	switch a {
	case "", AlignTop, AlignMiddle, AlignBottom:
		return nil
	}
	return fmt.Errorf("invalid vertical alignment %q", string(a))
}

// Options are the HTML attributes of a cell.
type Options struct {
	classes []string
	width   string
	RowSpan int
	ColSpan int
}

// NewOptions creates options carrying the given classes.
func NewOptions(classes ...string) Options {
	var o Options
	o.AddClass(classes...)
	return o
}

// AddClass adds classes that are not present yet, keeping insertion order.
// Each argument may hold several space separated names.
func (o *Options) AddClass(names ...string) {
	for _, n := range names {
		for _, c := range strings.Fields(n) {
			if !o.HasClass(c) {
				o.classes = append(o.classes, c)
			}
		}
	}
}

// RemoveClass removes classes.
func (o *Options) RemoveClass(names ...string) {
	drop := map[string]bool{}
	for _, n := range names {
		for _, c := range strings.Fields(n) {
			drop[c] = true
		}
	}
	kept := o.classes[:0]
	for _, c := range o.classes {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	o.classes = kept
}

// ToggleClass adds the class when on is true and removes it otherwise.
func (o *Options) ToggleClass(name string, on bool) {
	if on {
		o.AddClass(name)
	} else {
		o.RemoveClass(name)
	}
}

// HasClass reports whether the class is present.
func (o *Options) HasClass(name string) bool {
	for _, c := range o.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Class returns the value of the class attribute.
func (o Options) Class() string {
	return strings.Join(o.classes, " ")
}

// SetWidth sets the CSS width, e.g. "50px".
func (o *Options) SetWidth(width string) {
	o.width = width
}

// Width returns the CSS width.
func (o Options) Width() string {
	return o.width
}

// HasStyle reports whether Style returns a non-empty style.
func (o Options) HasStyle() bool {
	return o.width != ""
}

// Style returns the style attribute.
func (o Options) Style() safehtml.Style {
	if o.width == "" {
		return safehtml.Style{}
	}
	return safehtml.StyleFromProperties(safehtml.StyleProperties{Width: o.width})
}

// Clone returns a copy that does not share the class list.
func (o Options) Clone() Options {
	c := o
	c.classes = append([]string(nil), o.classes...)
	return c
}

// Merge returns base overlaid with extra: classes are unioned, and the
// width and spans of extra win when set.
func Merge(base, extra Options) Options {
	m := base.Clone()
	m.AddClass(extra.classes...)
	if extra.width != "" {
		m.width = extra.width
	}
	if extra.RowSpan != 0 {
		m.RowSpan = extra.RowSpan
	}
	if extra.ColSpan != 0 {
		m.ColSpan = extra.ColSpan
	}
	return m
}

// Width units accepted by FormatColumn.
const (
	UnitPixel   = "px"
	UnitEm      = "em"
	UnitPercent = "%"
)

// FormatColumn applies alignment classes and width to the options of every
// cell of a column. A zero width leaves the width unset; unit defaults to px.
// The width goes to the first options only, which callers pass as the header.
func FormatColumn(halign HAlign, valign VAlign, width int, unit string, opts ...*Options) error {
	if err := halign.Validate(); err != nil {
		return err
	}
	if err := valign.Validate(); err != nil {
		return err
	}
	for _, o := range opts {
		if halign != "" {
			o.AddClass("kv-align-" + string(halign))
		}
		if valign != "" {
			o.AddClass("kv-align-" + string(valign))
		}
	}
	if width < 0 {
		return fmt.Errorf("invalid width %d", width)
	}
	if width == 0 || len(opts) == 0 {
		return nil
	}
	switch unit {
	case "":
		unit = UnitPixel
	case UnitPixel, UnitEm, UnitPercent:
	default:
		return fmt.Errorf("invalid width unit %q", unit)
	}
	opts[0].SetWidth(strconv.Itoa(width) + unit)
	return nil
}
