// Package parser builds an AST from a token stream by recursive descent.
// One token of lookahead, no backtracking, first error wins.
package parser

import (
	"strconv"

	"rcc/pkg/ast"
	"rcc/pkg/diag"
	"rcc/pkg/token"
)

// Parser holds the state for the parsing process.
type Parser struct {
	tokens   []token.Token
	pos      int
	current  token.Token
	previous token.Token
}

// NewParser creates and initializes a new Parser from a token stream.
// The stream must be terminated by an EOF token.
func NewParser(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.current = p.tokens[0]
	}
	return p
}

// Parse consumes the whole stream and returns the program. The grammar
// admits exactly one function declaration followed by EOF.
func (p *Parser) Parse() (*ast.Program, error) {
	fn, err := p.parseFuncDecl()
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) {
		return nil, diag.Errorf(diag.Parse, p.current,
			"expected %s after function body, found %s", token.EOF, p.current.Describe())
	}
	return &ast.Program{Funcs: []*ast.Node{fn}}, nil
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.previous = p.current
		p.pos++
		if p.pos < len(p.tokens) {
			p.current = p.tokens[p.pos]
		}
	}
}

func (p *Parser) check(tokType token.Type) bool {
	return p.current.Type == tokType
}

func (p *Parser) match(tokType token.Type) bool {
	if !p.check(tokType) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(tokType token.Type, context string) (token.Token, error) {
	if p.check(tokType) {
		tok := p.current
		p.advance()
		return tok, nil
	}
	return token.Token{}, diag.Errorf(diag.Parse, p.current,
		"expected %s %s, found %s", tokType, context, p.current.Describe())
}

// Function := "int" Ident "(" ")" Block
func (p *Parser) parseFuncDecl() (*ast.Node, error) {
	retTok, err := p.expect(token.Int, "as return type")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident, "as function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen, "after function name"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, "in parameter list"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFuncDecl(retTok, name.Value, retTok.Type, body), nil
}

// Block := "{" Statement* "}"
func (p *Parser) parseBlock() (*ast.Node, error) {
	lbrace, err := p.expect(token.LBrace, "to open function body")
	if err != nil {
		return nil, err
	}
	var stmts []*ast.Node
	for !p.check(token.RBrace) {
		if p.check(token.EOF) {
			return nil, diag.Errorf(diag.Parse, p.current,
				"expected %s to close block, found %s", token.RBrace, p.current.Describe())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance()
	return ast.NewBlock(lbrace, stmts), nil
}

// Statement := "return" [ Expression ] ";"
func (p *Parser) parseStatement() (*ast.Node, error) {
	if p.check(token.Return) {
		return p.parseReturn()
	}
	return nil, diag.Errorf(diag.Parse, p.current,
		"expected statement, found %s", p.current.Describe())
}

func (p *Parser) parseReturn() (*ast.Node, error) {
	retTok := p.current
	p.advance()

	if p.match(token.Semi) {
		return ast.NewReturn(retTok, nil), nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi, "after return value"); err != nil {
		return nil, err
	}
	return ast.NewReturn(retTok, expr), nil
}

// Expression := Number. The only expression form in the subset.
func (p *Parser) parseExpression() (*ast.Node, error) {
	if !p.check(token.Number) {
		return nil, diag.Errorf(diag.Parse, p.current,
			"expected %s or %s after 'return', found %s",
			token.Number, token.Semi, p.current.Describe())
	}
	tok := p.current
	p.advance()
	// The lexer already range-checked the literal.
	val, _ := strconv.ParseInt(tok.Value, 10, 64)
	return ast.NewNumber(tok, val), nil
}
