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

package filters

import (
	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/markup"
)

func renderText(in Input) (safehtml.HTML, error) {
	attrs := append([]markup.Attr{
		markup.A("type", "text"),
		markup.A("name", in.Name),
		markup.A("value", in.Value()),
	}, in.HTML.Attrs()...)
	return markup.VoidTag("input", attrs), nil
}

// renderSelect renders a dropdown. With a prompt the first option is empty.
func renderSelect(in Input) (safehtml.HTML, error) {
	var opts []safehtml.HTML
	if in.Prompt != "" || len(in.Options) == 0 {
		opts = append(opts, markup.Tag("option", []markup.Attr{markup.A("value", "")}, markup.Text(in.Prompt)))
	}
	for _, o := range in.Options {
		opts = append(opts, markup.Tag("option", []markup.Attr{
			markup.A("value", o.Value),
			markup.B("selected", in.Selected(o.Value)),
		}, markup.Text(o.Label)))
	}
	attrs := append([]markup.Attr{markup.A("name", in.Name)}, in.HTML.Attrs()...)
	return markup.Tag("select", attrs, safehtml.HTMLConcat(opts...)), nil
}

// renderCheckbox renders a single on/off checkbox, or a checkbox list when
// options are given. The single form posts "0" when unchecked.
func renderCheckbox(in Input) (safehtml.HTML, error) {
	if len(in.Options) > 0 {
		return renderChoiceList(in, "checkbox", "checkbox-list"), nil
	}
	hidden := markup.VoidTag("input", []markup.Attr{
		markup.A("type", "hidden"),
		markup.A("name", in.Name),
		markup.A("value", "0"),
	})
	attrs := append([]markup.Attr{
		markup.A("type", "checkbox"),
		markup.A("name", in.Name),
		markup.A("value", "1"),
		markup.B("checked", in.Selected("1")),
	}, in.HTML.Attrs()...)
	return safehtml.HTMLConcat(hidden, markup.VoidTag("input", attrs)), nil
}

func renderCheckboxList(in Input) (safehtml.HTML, error) {
	return renderChoiceList(in, "checkbox", "checkbox-list"), nil
}

func renderRadioList(in Input) (safehtml.HTML, error) {
	return renderChoiceList(in, "radio", "radio-list"), nil
}

func renderChoiceList(in Input, inputType, listClass string) safehtml.HTML {
	items := make([]safehtml.HTML, 0, len(in.Options))
	for _, o := range in.Options {
		box := markup.VoidTag("input", []markup.Attr{
			markup.A("type", inputType),
			markup.A("name", in.Name),
			markup.A("value", o.Value),
			markup.B("checked", in.Selected(o.Value)),
		})
		items = append(items, markup.Tag("label", nil, safehtml.HTMLConcat(box, markup.Text(" "+o.Label))))
	}
	wrapper := in.HTML.Clone()
	wrapper.AddClass(listClass)
	return markup.Tag("div", wrapper.Attrs(), safehtml.HTMLConcat(items...))
}
