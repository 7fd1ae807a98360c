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

// Package formatter turns typed cell values into display text.
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/taxigrid/core/aggregates"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Spec names a format and its parameters, written as "name" or
// "name:param", e.g. "decimal:2" or "currency:EUR".
type Spec struct {
	Name     string
	Decimals int    // -1 selects the format's default precision
	Currency string // ISO 4217 code for the currency format
}

// Raw is the default spec: values are printed without localisation.
var Raw = Spec{Name: "raw", Decimals: -1}

// ParseSpec parses a spec string. The empty string yields Raw.
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Raw, nil
	}
	name, param, hasParam := strings.Cut(s, ":")
	spec := Spec{Name: strings.ToLower(name), Decimals: -1}
	if _, ok := knownFormats[spec.Name]; !ok {
		return Spec{}, fmt.Errorf("unknown format %q", name)
	}
	if !hasParam {
		return spec, nil
	}
	switch spec.Name {
	case "currency":
		spec.Currency = strings.ToUpper(param)
	case "decimal", "percent", "size", "shortsize":
		d, err := strconv.Atoi(param)
		if err != nil || d < 0 {
			return Spec{}, fmt.Errorf("format %q: invalid precision %q", name, param)
		}
		spec.Decimals = d
	default:
		return Spec{}, fmt.Errorf("format %q takes no parameter", name)
	}
	return spec, nil
}

// MustParseSpec is like ParseSpec but panics on error.
func MustParseSpec(s string) Spec {
	spec, err := ParseSpec(s)
	if err != nil {
		panic(err)
	}
	return spec
}

// String returns the spec in its parseable form.
func (s Spec) String() string {
	switch {
	case s.Currency != "":
		return s.Name + ":" + s.Currency
	case s.Decimals >= 0:
		return s.Name + ":" + strconv.Itoa(s.Decimals)
	}
	return s.Name
}

var knownFormats = map[string]struct{}{
	"raw": {}, "text": {}, "integer": {}, "decimal": {}, "percent": {},
	"currency": {}, "boolean": {}, "size": {}, "shortsize": {}, "ordinal": {},
	"relativetime": {}, "date": {}, "datetime": {},
}

// Formatter converts a value into display text according to a spec.
// The returned text is plain text; callers escape it for HTML.
type Formatter interface {
	Format(value any, spec Spec) (string, error)
}

// Options configures a Default formatter.
type Options struct {
	Locale          language.Tag
	NullDisplay     string // text for nil values
	DefaultCurrency string // used when a currency spec has no code
	DateLayout      string
	DateTimeLayout  string
	BooleanFormat   [2]string // texts for false and true
	Now             func() time.Time
}

// Default is the built-in Formatter.
type Default struct {
	opts    Options
	printer *message.Printer
}

// New creates a Default formatter, filling unset options.
func New(opts Options) *Default {
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "USD"
	}
	if opts.DateLayout == "" {
		opts.DateLayout = "2006-01-02"
	}
	if opts.DateTimeLayout == "" {
		opts.DateTimeLayout = "2006-01-02 15:04"
	}
	if opts.BooleanFormat == [2]string{} {
		opts.BooleanFormat = [2]string{"No", "Yes"}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Default{opts: opts, printer: message.NewPrinter(opts.Locale)}
}

// Format implements Formatter.
func (f *Default) Format(value any, spec Spec) (string, error) {
	if value == nil {
		return f.opts.NullDisplay, nil
	}
	switch spec.Name {
	case "", "raw", "text":
		return raw(value), nil
	case "boolean":
		b, err := toBool(value)
		if err != nil {
			return "", err
		}
		if b {
			return f.opts.BooleanFormat[1], nil
		}
		return f.opts.BooleanFormat[0], nil
	case "date", "datetime", "relativetime":
		t, ok := value.(time.Time)
		if !ok {
			return "", fmt.Errorf("format %s: %v (%T) is not a time", spec.Name, value, value)
		}
		switch spec.Name {
		case "date":
			return t.Format(f.opts.DateLayout), nil
		case "datetime":
			return t.Format(f.opts.DateTimeLayout), nil
		}
		return humanize.RelTime(t, f.opts.Now(), "ago", "from now"), nil
	}

	n, ok := aggregates.ToFloat(value)
	if !ok {
		return "", fmt.Errorf("format %s: %v (%T) is not a number", spec.Name, value, value)
	}
	switch spec.Name {
	case "integer":
		return f.printer.Sprint(number.Decimal(math.Round(n), number.MaxFractionDigits(0))), nil
	case "decimal":
		d := spec.Decimals
		if d < 0 {
			d = 2
		}
		return f.printer.Sprint(number.Decimal(n, number.MinFractionDigits(d), number.MaxFractionDigits(d))), nil
	case "percent":
		d := spec.Decimals
		if d < 0 {
			d = 0
		}
		return f.printer.Sprint(number.Percent(n, number.MinFractionDigits(d), number.MaxFractionDigits(d))), nil
	case "currency":
		code := spec.Currency
		if code == "" {
			code = f.opts.DefaultCurrency
		}
		unit, err := currency.ParseISO(code)
		if err != nil {
			return "", fmt.Errorf("format currency: %w", err)
		}
		return f.printer.Sprint(currency.Symbol(unit.Amount(n))), nil
	case "size":
		return humanize.IBytes(uint64(math.Max(n, 0))), nil
	case "shortsize":
		return humanize.Bytes(uint64(math.Max(n, 0))), nil
	case "ordinal":
		return humanize.Ordinal(int(n)), nil
	}
	return "", fmt.Errorf("unknown format %q", spec.Name)
}

func raw(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	if n, ok := aggregates.ToFloat(value); ok {
		return n != 0, nil
	}
	return false, fmt.Errorf("format boolean: %v (%T) is not a boolean", value, value)
}
