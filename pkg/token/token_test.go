package token

import "testing"

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{EOF, "end of file"},
		{Int, "'int'"},
		{Return, "'return'"},
		{Semi, "';'"},
		{Ident, "identifier"},
		{Type(999), "unknown token"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: Ident, Value: "main"}, "identifier 'main'"},
		{Token{Type: Number, Value: "42"}, "integer literal '42'"},
		{Token{Type: Return}, "'return'"},
		{Token{Type: EOF}, "end of file"},
	}
	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}
