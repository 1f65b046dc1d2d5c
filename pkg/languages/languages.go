// Package languages builds the ordered list of page languages to try,
// following the tldr-pages client conventions for LANG and LANGUAGE.
package languages

import (
	"os"
	"strings"
)

// Default is appended to every list and used alone when no locale is set.
const Default = "en"

// posixLocale never contributes a language code
const posixLocale = "POSIX"

// Resolve returns the language preference list for the given primary locale
// ($LANG) and colon-separated locale list ($LANGUAGE). An empty string means
// the variable is unset. The list is ordered, free of duplicates and always
// ends with "en".
//
// LANGUAGE is ignored when LANG is unset.
func Resolve(primary, list string) []string {
	if primary == "" {
		return []string{Default}
	}

	candidates := append(strings.Split(list, ":"), primary)

	var langs []string
	for _, locale := range candidates {
		// Language plus country code, e.g. pt_BR
		if len(locale) >= 5 && locale[2] == '_' {
			langs = append(langs, locale[:5])
		}
		if len(locale) >= 2 && locale != posixLocale {
			langs = append(langs, locale[:2])
		}
	}
	langs = append(langs, Default)

	return dedupe(langs)
}

// FromEnv resolves the list from the LANG and LANGUAGE environment variables.
func FromEnv() []string {
	return Resolve(os.Getenv("LANG"), os.Getenv("LANGUAGE"))
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, lang := range in {
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out
}
