package token

type Type int

const (
	EOF Type = iota
	Ident
	Number
	Int
	Return
	LParen
	RParen
	LBrace
	RBrace
	Semi
)

var KeywordMap = map[string]Type{
	"int":    Int,
	"return": Return,
}

// TypeStrings maps a token type to the text used for it in diagnostics.
// Ident and Number carry their actual spelling in Token.Value.
var TypeStrings = map[Type]string{
	EOF:    "end of file",
	Ident:  "identifier",
	Number: "integer literal",
	LParen: "'('",
	RParen: "')'",
	LBrace: "'{'",
	RBrace: "'}'",
	Semi:   "';'",
}

func init() {
	for str, typ := range KeywordMap {
		TypeStrings[typ] = "'" + str + "'"
	}
}

func (t Type) String() string {
	if s, ok := TypeStrings[t]; ok {
		return s
	}
	return "unknown token"
}

// Token is one immutable lexical unit. Line and Column are 1-based and
// refer to the first character of the lexeme; Len spans the whole lexeme.
type Token struct {
	Type   Type
	Value  string
	Line   int
	Column int
	Len    int
}

// Describe renders the token for expected-vs-found diagnostics.
func (t Token) Describe() string {
	switch t.Type {
	case Ident:
		return "identifier '" + t.Value + "'"
	case Number:
		return "integer literal '" + t.Value + "'"
	default:
		return t.Type.String()
	}
}
