// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared string helpers.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToLowerCamelCase converts PascalCase to camelCase.
func ToLowerCamelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// SplitCamelCase splits an identifier into words at case changes.
// Runs of capitals stay together: "HTTPWidgetAPI" -> ["HTTP", "Widget", "API"].
func SplitCamelCase(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur)
		if unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if unicode.IsDigit(prev) != unicode.IsDigit(cur) && unicode.IsLetter(cur) && unicode.IsUpper(cur) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

// ToKebabCase converts an identifier to lower-case words joined by hyphens:
// "WidgetController" -> "widget-controller".
func ToKebabCase(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == '.' {
			return ' '
		}
		return r
	}, s)

	lower := cases.Lower(language.English)
	var words []string
	for _, field := range strings.Fields(s) {
		for _, w := range SplitCamelCase(field) {
			words = append(words, lower.String(w))
		}
	}
	return strings.Join(words, "-")
}

// ToTitle capitalizes each word of a phrase.
func ToTitle(s string) string {
	return cases.Title(language.English).String(s)
}
