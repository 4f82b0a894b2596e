package reader

import (
	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// token ids of the extended grammar syntax
const (
	tokNonterminal = iota
	tokTerminal
	tokArrow
	tokPipe
	tokNewline
)

var extLexer *lexmachine.Lexer

func init() {
	extLexer = lexmachine.NewLexer()

	token := func(id int) lexmachine.Action {
		return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(id, string(m.Bytes), m), nil
		}
	}
	skip := func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
		return nil, nil
	}

	extLexer.Add([]byte(`<[^>]*>`), token(tokNonterminal))
	extLexer.Add([]byte(`"[^"]*"`), token(tokTerminal))
	extLexer.Add([]byte(`->`), token(tokArrow))
	extLexer.Add([]byte(`\|`), token(tokPipe))
	extLexer.Add([]byte(`\n`), token(tokNewline))
	extLexer.Add([]byte(`[ \t\r]+`), skip)

	if err := extLexer.Compile(); err != nil {
		panic("compiling extended-syntax lexer: " + err.Error())
	}
}

// ReadExtended parses a grammar in the extended syntax, e.g.
//
//	<S> -> <NP> <VP> | <S> <PP> | <S> "and" <S>
//	<NP> -> "n"
//	<NP> -> "det" "n"
//
// Nonterminal names may contain any character except >. Rules are separated
// by newlines; an empty alternate denotes ε. The left side of the first rule
// becomes the start symbol.
func ReadExtended(text string) (grammar.Grammar, error) {
	toks, err := tokenizeExtended(text)
	if err != nil {
		return grammar.Grammar{}, err
	}

	p := &extParser{toks: toks}
	rules, err := p.readGram()
	if err != nil {
		return grammar.Grammar{}, err
	}
	if !p.atEOF() {
		return grammar.Grammar{}, cfgerrors.Invalidf("unexpected %q in grammar text", p.peek().value)
	}
	return grammar.FromRules(rules)
}

type extToken struct {
	id    int
	value string
}

func tokenizeExtended(text string) ([]extToken, error) {
	scanner, err := extLexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}

	var toks []extToken
	for {
		tok, err, eof := scanner.Next()
		if eof {
			break
		}
		if err != nil {
			return nil, cfgerrors.Invalidf("bad grammar text: %v", err)
		}
		lmTok := tok.(*lexmachine.Token)
		toks = append(toks, extToken{id: lmTok.Type, value: string(lmTok.Lexeme)})
	}
	return toks, nil
}

// extParser is a recursive-descent reader over the token list.
type extParser struct {
	toks []extToken
	pos  int
}

func (p *extParser) atEOF() bool {
	return p.pos >= len(p.toks)
}

func (p *extParser) peek() extToken {
	if p.atEOF() {
		return extToken{id: -1}
	}
	return p.toks[p.pos]
}

func (p *extParser) tryRead(id int) (extToken, bool) {
	if p.peek().id == id {
		tok := p.toks[p.pos]
		p.pos++
		return tok, true
	}
	return extToken{}, false
}

// readGram reads newline-separated rules until no more remain.
func (p *extParser) readGram() ([]grammar.Rule, error) {
	var rules []grammar.Rule

	for {
		if _, ok := p.tryRead(tokNewline); ok {
			continue
		}
		if p.peek().id != tokNonterminal {
			break
		}
		ruleAlts, err := p.readRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, ruleAlts...)
	}

	if len(rules) == 0 {
		return nil, cfgerrors.Invalidf("no production rules were given")
	}
	return rules, nil
}

// readRule reads one line of alternates for a single left side.
func (p *extParser) readRule() ([]grammar.Rule, error) {
	ntTok, _ := p.tryRead(tokNonterminal)
	lhs := grammar.NT(ntTok.value[1 : len(ntTok.value)-1])

	if _, ok := p.tryRead(tokArrow); !ok {
		return nil, cfgerrors.Invalidf("expected -> after %q", ntTok.value)
	}

	var rules []grammar.Rule
	for {
		sentence := p.readSentence()
		rules = append(rules, grammar.Rule{LHS: lhs, RHS: sentence})
		if _, ok := p.tryRead(tokPipe); !ok {
			break
		}
	}
	return rules, nil
}

// readSentence reads symbols until something other than a symbol appears.
func (p *extParser) readSentence() []grammar.Symbol {
	var symbols []grammar.Symbol
	for {
		if tok, ok := p.tryRead(tokNonterminal); ok {
			symbols = append(symbols, grammar.NT(tok.value[1:len(tok.value)-1]))
			continue
		}
		if tok, ok := p.tryRead(tokTerminal); ok {
			symbols = append(symbols, grammar.T(tok.value[1:len(tok.value)-1]))
			continue
		}
		return symbols
	}
}
