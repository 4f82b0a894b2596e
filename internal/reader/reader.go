// Package reader loads context-free grammars from their textual surface
// forms: the single-character short form, the extended form with bracketed
// nonterminals and quoted terminals, and the TOML grammar file format.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
)

// Format identifies a grammar surface form.
type Format string

const (
	// FormatShort is the single-character inline form: uppercase letters are
	// nonterminals, everything else is a terminal.
	FormatShort Format = "short"

	// FormatExtended is the token form with <name> nonterminals and "name"
	// terminals.
	FormatExtended Format = "ext"

	// FormatTOML is the TOML grammar file format.
	FormatTOML Format = "toml"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case string(FormatShort):
		return FormatShort, nil
	case string(FormatExtended), "extended":
		return FormatExtended, nil
	case string(FormatTOML):
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown grammar format %q", s)
}

// DetectFormat guesses the format of a grammar file from its extension:
// .toml is TOML and anything else is the extended form.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatExtended
}

// Read parses grammar text in the given format.
func Read(text string, f Format) (grammar.Grammar, error) {
	switch f {
	case FormatShort:
		return grammar.Parse(text)
	case FormatExtended:
		return ReadExtended(text)
	case FormatTOML:
		return ReadTOML(text)
	}
	return grammar.Grammar{}, fmt.Errorf("unknown grammar format %q", f)
}

// ReadFile loads a grammar from a file in the given format. If f is empty the
// format is detected from the file extension.
func ReadFile(path string, f Format) (grammar.Grammar, error) {
	if f == "" {
		f = DetectFormat(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, err
	}
	return Read(string(data), f)
}
