package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ashware/chomsky"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/input"
	"github.com/ashware/chomsky/internal/reader"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

const shellHelp = `commands:
  load FILE            load a grammar from a file (format by extension)
  short TEXT           define a grammar inline in the short form
  show                 display the loaded grammar
  op NAME [FORMAT]     run an operation (show, cnf, augment, firstfollow,
                       lr0, slr, report)
  parse PARSER INPUT   parse an input string (topdown, bottomup, cyk, earley)
  trace PARSER INPUT   like parse, but print the machine trace as well
  help                 show this help
  quit                 leave the shell`

// runShell runs the interactive grammar exploration shell until the user
// quits or input runs out.
func runShell() error {
	var lines input.LineReader
	if isatty.IsTerminal(os.Stdin.Fd()) {
		rl, err := input.NewInteractiveReader("chomsky> ")
		if err != nil {
			return err
		}
		lines = rl
	} else {
		lines = input.NewDirectReader(os.Stdin)
	}
	defer lines.Close()

	pterm.Info.Println("chomsky grammar shell; type 'help' for commands")

	var g grammar.Grammar
	loaded := false

	for {
		line, err := lines.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(cmd) {
		case "quit", "exit":
			return nil

		case "help":
			fmt.Println(shellHelp)

		case "load":
			if rest == "" {
				pterm.Error.Println("load requires a file path")
				continue
			}
			newG, err := reader.ReadFile(rest, "")
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			g = newG
			loaded = true
			pterm.Success.Printfln("loaded grammar with %d productions", g.NumProductions())

		case "short":
			if rest == "" {
				pterm.Error.Println("short requires grammar text; separate rules with ;")
				continue
			}
			newG, err := grammar.Parse(strings.ReplaceAll(rest, ";", "\n"))
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			g = newG
			loaded = true
			pterm.Success.Printfln("loaded grammar with %d productions", g.NumProductions())

		case "show":
			if !requireGrammar(loaded) {
				continue
			}
			out, err := chomsky.Run(g, chomsky.OpShow, chomsky.FormatText)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			fmt.Println(out)

		case "op":
			if !requireGrammar(loaded) {
				continue
			}
			opStr, formatStr, _ := strings.Cut(rest, " ")
			op, err := chomsky.ParseOperation(opStr)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			format := chomsky.FormatText
			if op == chomsky.OpLR0 {
				format = chomsky.FormatDOT
			}
			if strings.TrimSpace(formatStr) != "" {
				format, err = chomsky.ParseOutputFormat(strings.TrimSpace(formatStr))
				if err != nil {
					pterm.Error.Println(err.Error())
					continue
				}
			}
			out, err := chomsky.Run(g, op, format)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			fmt.Println(out)

		case "parse", "trace":
			if !requireGrammar(loaded) {
				continue
			}
			parserStr, inputStr, _ := strings.Cut(rest, " ")
			kind, err := chomsky.ParseParserKind(parserStr)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			inputStr = strings.TrimSpace(inputStr)
			if inputStr == "" {
				pterm.Error.Println("nothing to parse")
				continue
			}

			var traceFn func(s string)
			if strings.EqualFold(cmd, "trace") {
				traceFn = func(s string) { fmt.Println(s) }
			}

			res, err := chomsky.ParseInput(g, kind, chomsky.Tokens(g, inputStr), traceFn)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			pterm.Success.Printfln("parse: %v", res.Indices)
			fmt.Println(res.Tree.String())

		default:
			pterm.Error.Printfln("unknown command %q; type 'help' for commands", cmd)
		}
	}
}

func requireGrammar(loaded bool) bool {
	if !loaded {
		pterm.Error.Println("no grammar loaded; use 'load' or 'short' first")
	}
	return loaded
}
