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

package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in       string
		expected Spec
	}{
		{"", Raw},
		{"decimal", Spec{Name: "decimal", Decimals: -1}},
		{"decimal:3", Spec{Name: "decimal", Decimals: 3}},
		{"Currency:eur", Spec{Name: "currency", Decimals: -1, Currency: "EUR"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	for _, bad := range []string{"bogus", "decimal:x", "ordinal:2"} {
		_, err := ParseSpec(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "decimal:3", MustParseSpec("decimal:3").String())
}

func TestFormat(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f := New(Options{Locale: language.English, NullDisplay: "(not set)", Now: func() time.Time { return now }})

	tests := []struct {
		name     string
		value    any
		spec     string
		expected string
	}{
		{"nil", nil, "decimal", "(not set)"},
		{"raw float", 10.0, "", "10"},
		{"raw string", "<b>", "text", "<b>"},
		{"raw int", 42, "raw", "42"},
		{"integer rounds", 12.6, "integer", "13"},
		{"decimal default precision", 3.14159, "decimal", "3.14"},
		{"decimal grouping", 1234.5, "decimal:2", "1,234.50"},
		{"decimal from string", "2", "decimal:1", "2.0"},
		{"decimal int16", int16(3), "decimal:1", "3.0"},
		{"integer uint8", uint8(200), "integer", "200"},
		{"percent int8", int8(1), "percent", "100%"},
		{"size uint16", uint16(2048), "size", "2.0 KiB"},
		{"percent", 0.25, "percent", "25%"},
		{"boolean true", true, "boolean", "Yes"},
		{"boolean number", 0, "boolean", "No"},
		{"size", 1024, "size", "1.0 KiB"},
		{"shortsize", 1000, "shortsize", "1.0 kB"},
		{"ordinal", 3, "ordinal", "3rd"},
		{"date", now, "date", "2024-06-01"},
		{"datetime", now, "datetime", "2024-06-01 12:00"},
		{"relative", now.Add(-3 * time.Hour), "relativetime", "3 hours ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(tt.value, MustParseSpec(tt.spec))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	f := New(Options{})
	got, err := f.Format(12.5, MustParseSpec("currency"))
	require.NoError(t, err)
	assert.Contains(t, got, "12.5")

	_, err = f.Format(1, Spec{Name: "currency", Currency: "XXXX"})
	assert.Error(t, err)
}

func TestFormatErrors(t *testing.T) {
	f := New(Options{})
	_, err := f.Format("abc", MustParseSpec("decimal"))
	assert.Error(t, err)
	_, err = f.Format(1, MustParseSpec("date"))
	assert.Error(t, err)
	_, err = f.Format([]int{}, MustParseSpec("boolean"))
	assert.Error(t, err)
}
