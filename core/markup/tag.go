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

package markup

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// Attr is a single HTML attribute. Boolean attributes set Boolean and are
// written without a value when On and omitted otherwise.
type Attr struct {
	Name    string
	Value   string
	Boolean bool
	On      bool
}

// A sets a plain attribute.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// B sets a boolean attribute.
func B(name string, on bool) Attr {
	return Attr{Name: name, Boolean: true, On: on}
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Attrs returns the attributes described by the options.
func (o Options) Attrs() []Attr {
	var attrs []Attr
	if c := o.Class(); c != "" {
		attrs = append(attrs, A("class", c))
	}
	if o.HasStyle() {
		attrs = append(attrs, A("style", o.Style().String()))
	}
	if o.RowSpan > 1 {
		attrs = append(attrs, A("rowspan", strconv.Itoa(o.RowSpan)))
	}
	if o.ColSpan > 1 {
		attrs = append(attrs, A("colspan", strconv.Itoa(o.ColSpan)))
	}
	return attrs
}

// Tag renders an element with escaped attribute values around content.
// Tag and attribute names come from code, never from data, and must be
// lower-case identifiers.
func Tag(name string, attrs []Attr, content safehtml.HTML) safehtml.HTML {
	var sb strings.Builder
	openTag(&sb, name, attrs)
	sb.WriteString(content.String())
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteString(">")
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(sb.String())
}

// VoidTag renders an element without content or closing tag, such as input.
func VoidTag(name string, attrs []Attr) safehtml.HTML {
	var sb strings.Builder
	openTag(&sb, name, attrs)
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(sb.String())
}

// Text escapes plain text.
func Text(s string) safehtml.HTML {
	return safehtml.HTMLEscaped(s)
}

func openTag(sb *strings.Builder, name string, attrs []Attr) {
	mustName(name)
	sb.WriteString("<")
	sb.WriteString(name)
	for _, a := range attrs {
		mustName(a.Name)
		if a.Boolean {
			if a.On {
				sb.WriteString(" ")
				sb.WriteString(a.Name)
			}
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
}

func mustName(name string) {
	if !namePattern.MatchString(name) {
		panic(fmt.Sprintf("markup: invalid element or attribute name %q", name))
	}
}
