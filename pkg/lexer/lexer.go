// Package lexer turns source text into a stream of tokens.
package lexer

import (
	"strconv"
	"unicode"

	"rcc/pkg/diag"
	"rcc/pkg/token"
)

type Lexer struct {
	source []rune
	pos    int
	line   int
	column int
}

func New(source []rune) *Lexer {
	return &Lexer{source: source, line: 1, column: 1}
}

// Tokenize drains a fresh lexer over source and returns the full token
// sequence, ending with exactly one EOF token.
func Tokenize(source string) ([]token.Token, error) {
	l := New([]rune(source))
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token in source order. After the last real token
// it returns one EOF token; calling it past EOF keeps returning EOF.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}
	startPos, startCol, startLine := l.pos, l.column, l.line

	if l.isAtEnd() {
		return l.makeToken(token.EOF, "", startPos, startCol, startLine), nil
	}

	ch := l.peek()
	if unicode.IsLetter(ch) || ch == '_' {
		l.advance()
		return l.identifierOrKeyword(startPos, startCol, startLine)
	}
	if unicode.IsDigit(ch) {
		return l.numberLiteral(startPos, startCol, startLine)
	}

	l.advance()
	switch ch {
	case '(':
		return l.makeToken(token.LParen, "", startPos, startCol, startLine), nil
	case ')':
		return l.makeToken(token.RParen, "", startPos, startCol, startLine), nil
	case '{':
		return l.makeToken(token.LBrace, "", startPos, startCol, startLine), nil
	case '}':
		return l.makeToken(token.RBrace, "", startPos, startCol, startLine), nil
	case ';':
		return l.makeToken(token.Semi, "", startPos, startCol, startLine), nil
	}

	tok := l.makeToken(token.EOF, string(ch), startPos, startCol, startLine)
	return token.Token{}, diag.Errorf(diag.Lex, tok, "unexpected character '%c'", ch)
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	return ch
}

func (l *Lexer) isAtEnd() bool { return l.pos >= len(l.source) }

func (l *Lexer) makeToken(tokType token.Type, value string, startPos, startCol, startLine int) token.Token {
	return token.Token{
		Type: tokType, Value: value,
		Line: startLine, Column: startCol, Len: l.pos - startPos,
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		case '/':
			switch l.peekNext() {
			case '/':
				l.lineComment()
			case '*':
				if err := l.blockComment(); err != nil {
					return err
				}
			default:
				return nil
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) lineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) blockComment() error {
	startTok := l.makeToken(token.EOF, "", l.pos, l.column, l.line)
	l.advance()
	l.advance()
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return diag.Errorf(diag.Lex, startTok, "unterminated block comment")
}

func (l *Lexer) identifierOrKeyword(startPos, startCol, startLine int) (token.Token, error) {
	for unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	value := string(l.source[startPos:l.pos])
	tok := l.makeToken(token.Ident, value, startPos, startCol, startLine)

	if tokType, isKeyword := token.KeywordMap[value]; isKeyword {
		tok.Type = tokType
		tok.Value = ""
	}
	return tok, nil
}

func (l *Lexer) numberLiteral(startPos, startCol, startLine int) (token.Token, error) {
	for unicode.IsDigit(l.peek()) {
		l.advance()
	}
	valueStr := string(l.source[startPos:l.pos])

	tok := l.makeToken(token.Number, "", startPos, startCol, startLine)
	val, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		// Digit runs only fail to parse by exceeding 64 bits. Reject
		// instead of wrapping.
		return token.Token{}, diag.Errorf(diag.Lex, tok,
			"integer literal '%s' overflows a 64-bit integer", valueStr)
	}
	tok.Value = strconv.FormatInt(val, 10)
	return tok, nil
}
