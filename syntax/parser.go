package syntax

import (
	"bufio"
	"os"

	"sablec/common"
	"sablec/depm"
	"sablec/report"
)

// Parser is the parser for a Sable source file.  It is a recursive descent
// parser which also performs global symbol declaration as it goes.  All
// parsing functions assume that they begin with the parser positioned on the
// first token of their production and must consume all tokens (including the
// last) of their production, leaving the parser on the next token.  Parsers
// are created once per file.
type Parser struct {
	// sbFile is the Sable source file being parsed.
	sbFile *depm.SableFile

	// lexer is the lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token before the current token.
	lookbehind *Token

	// noStructLit indicates that struct literals may not begin at the current
	// position.  This is used while parsing block headers such as `if` and
	// `while` conditions where a `{` always opens the block.
	noStructLit bool
}

// ParseFile parses a source file and stores the resulting definitions into it.
// All errors are reported via the standard reporting mechanism.
func ParseFile(sbFile *depm.SableFile) {
	defer report.CatchErrors(sbFile.AbsPath, sbFile.ReprPath)

	file, err := os.Open(sbFile.AbsPath)
	if err != nil {
		report.ReportStdError(sbFile.ReprPath, err)
		return
	}
	defer file.Close()

	p := &Parser{
		sbFile: sbFile,
		lexer:  NewLexer(bufio.NewReader(file)),
	}

	p.next()

	for !p.has(TOK_EOF) {
		p.parseDefinition()
	}
}

/* -------------------------------------------------------------------------- */

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}

	p.lookbehind = p.tok
	p.tok = tok
}

// has returns whether the parser is positioned on a token of the given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the current token is of the given kind and moves the
// parser past it, returning the matched token.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.reject()
	}

	tok := p.tok
	p.next()
	return tok
}

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.has(TOK_EOF) {
		panic(report.Raise(p.tok.Span, "unexpected end of file"))
	}

	panic(report.Raise(p.tok.Span, "unexpected token: `%s`", p.tok.Value))
}

// error raises a compile error on the given token.
func (p *Parser) error(tok *Token, msg string, args ...interface{}) {
	panic(report.Raise(tok.Span, msg, args...))
}

// recError reports a recoverable compile error over the given span: parsing
// continues after it is reported.
func (p *Parser) recError(span *report.TextSpan, msg string, args ...interface{}) {
	report.ReportCompileError(p.sbFile.AbsPath, p.sbFile.ReprPath, span, msg, args...)
}

/* -------------------------------------------------------------------------- */

// defineGlobalSymbol defines a global symbol in the parser's parent package.
// Files of a package are parsed concurrently, so definition goes through the
// package's synchronized DefineSymbol.
func (p *Parser) defineGlobalSymbol(sym *common.Symbol) {
	if !p.sbFile.Parent.DefineSymbol(sym) {
		p.recError(sym.DefSpan, "multiple symbols named %s defined in global scope", sym.Name)
	}
}
