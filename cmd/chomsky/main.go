/*
Chomsky analyzes context-free grammars.

It reads a grammar from a file or an inline expression and performs one of
the analysis operations on it: displaying the grammar, conversion to Chomsky
normal form, augmentation, FIRST/FOLLOW computation, LR(0) automaton
construction, SLR(1) table construction, or a full report. It can also run
one of the classic parsing algorithms over an input string.

Usage:

	chomsky [flags]

The flags are:

	-v, --version
		Give the current version of chomsky and then exit.

	-g, --grammar FILE
		Read the grammar from the given file.

	-e, --expr TEXT
		Use the given inline short-form grammar text instead of a file.

	-r, --reader FORMAT
		Read the grammar as 'short', 'ext', or 'toml'. Defaults to 'short'
		for --expr and to a guess from the file extension otherwise.

	-o, --op OPERATION
		Perform the given operation: one of 'show', 'cnf', 'augment',
		'firstfollow', 'lr0', 'slr', or 'report'. Defaults to 'show'.

	-f, --format FORMAT
		Render output as 'text', 'html', or 'dot'. Defaults to 'text'. The
		'lr0' operation is graph-shaped and defaults to 'dot'.

	-p, --parse INPUT
		Parse the given input string instead of performing an operation.

	-P, --parser PARSER
		With --parse, use the given algorithm: 'topdown', 'bottomup', 'cyk',
		or 'earley'. Defaults to 'earley'.

	-t, --trace
		With --parse, print the parser's step-by-step trace to stderr.

	--save FILE
		Save the loaded grammar as a binary snapshot and exit.

	--load FILE
		Load the grammar from a binary snapshot instead of --grammar.

	-i, --interactive
		Start an interactive shell for exploring grammars.
*/
package main

import (
	"fmt"
	"os"

	"github.com/ashware/chomsky"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/reader"
	"github.com/ashware/chomsky/internal/version"
	"github.com/dekarrin/rezi"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitError indicates an unsuccessful program execution due to a problem
	// while running an operation or parse.
	ExitError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue loading the grammar or understanding the flags.
	ExitInitError
)

var (
	returnCode      int     = ExitSuccess
	flagVersion     *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile     *string = pflag.StringP("grammar", "g", "", "The file that contains the grammar to analyze")
	grammarExpr     *string = pflag.StringP("expr", "e", "", "Inline short-form grammar text to analyze")
	readerName      *string = pflag.StringP("reader", "r", "", "The grammar reader to use: short, ext, or toml")
	opName          *string = pflag.StringP("op", "o", "show", "The operation to perform on the grammar")
	formatName      *string = pflag.StringP("format", "f", "", "The output format: text, html, or dot")
	parseInput      *string = pflag.StringP("parse", "p", "", "Parse the given input string")
	parserName      *string = pflag.StringP("parser", "P", "earley", "The parsing algorithm to use with --parse")
	flagTrace       *bool   = pflag.BoolP("trace", "t", false, "Print the parser trace to stderr")
	saveFile        *string = pflag.String("save", "", "Save the loaded grammar as a binary snapshot")
	loadFile        *string = pflag.String("load", "", "Load the grammar from a binary snapshot")
	flagInteractive *bool   = pflag.BoolP("interactive", "i", false, "Start an interactive grammar shell")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("chomsky %s\n", version.Current)
		return
	}

	if *flagInteractive {
		if err := runShell(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
		}
		return
	}

	snap, err := loadSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *saveFile != "" {
		if err := saveSnapshot(snap, *saveFile); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
		}
		return
	}

	g, err := snap.Grammar()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *parseInput != "" {
		if err := runParse(g, *parseInput); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitError
		}
		return
	}

	if err := runOp(g); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitError
	}
}

// loadSnapshot builds the grammar snapshot from whichever of --load, --expr,
// and --grammar was given.
func loadSnapshot() (chomsky.Snapshot, error) {
	if *loadFile != "" {
		data, err := os.ReadFile(*loadFile)
		if err != nil {
			return chomsky.Snapshot{}, err
		}
		var snap chomsky.Snapshot
		if _, err := rezi.DecBinary(data, &snap); err != nil {
			return chomsky.Snapshot{}, fmt.Errorf("%s: %w", *loadFile, err)
		}
		return snap, nil
	}

	if *grammarExpr != "" {
		f := reader.FormatShort
		if *readerName != "" {
			var err error
			f, err = reader.ParseFormat(*readerName)
			if err != nil {
				return chomsky.Snapshot{}, err
			}
		}
		return chomsky.Snapshot{Name: "inline", Format: string(f), Text: *grammarExpr}, nil
	}

	if *grammarFile == "" {
		return chomsky.Snapshot{}, fmt.Errorf("no grammar given; use --grammar, --expr, or --load")
	}

	f := reader.DetectFormat(*grammarFile)
	if *readerName != "" {
		var err error
		f, err = reader.ParseFormat(*readerName)
		if err != nil {
			return chomsky.Snapshot{}, err
		}
	}

	data, err := os.ReadFile(*grammarFile)
	if err != nil {
		return chomsky.Snapshot{}, err
	}
	return chomsky.Snapshot{Name: *grammarFile, Format: string(f), Text: string(data)}, nil
}

func saveSnapshot(snap chomsky.Snapshot, path string) error {
	// validate before persisting so a bad snapshot is never written
	if _, err := snap.Grammar(); err != nil {
		return err
	}
	return os.WriteFile(path, rezi.EncBinary(snap), 0660)
}

func runOp(g grammar.Grammar) error {
	op, err := chomsky.ParseOperation(*opName)
	if err != nil {
		return err
	}

	format := chomsky.FormatText
	if op == chomsky.OpLR0 {
		format = chomsky.FormatDOT
	}
	if *formatName != "" {
		format, err = chomsky.ParseOutputFormat(*formatName)
		if err != nil {
			return err
		}
	}

	out, err := chomsky.Run(g, op, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runParse(g grammar.Grammar, input string) error {
	kind, err := chomsky.ParseParserKind(*parserName)
	if err != nil {
		return err
	}

	var trace func(s string)
	if *flagTrace {
		trace = func(s string) {
			fmt.Fprintln(os.Stderr, s)
		}
	}

	res, err := chomsky.ParseInput(g, kind, chomsky.Tokens(g, input), trace)
	if err != nil {
		return err
	}

	fmt.Printf("parse: %v\n", res.Indices)
	fmt.Println(res.TreeDOT())
	return nil
}
