package scan

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"slices"
	"testing"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input  string
		tokens []Token
	}{
		{
			input: `X0 = X1*X0 + 3;`,
			tokens: []Token{
				{Type: Identifier, Text: "X0", Location: Location{Line: 0, Column: 0}},
				{Type: Assign, Text: "=", Location: Location{Line: 0, Column: 3}},
				{Type: Identifier, Text: "X1", Location: Location{Line: 0, Column: 5}},
				{Type: Operator, Text: "*", Location: Location{Line: 0, Column: 7}},
				{Type: Identifier, Text: "X0", Location: Location{Line: 0, Column: 8}},
				{Type: Operator, Text: "+", Location: Location{Line: 0, Column: 11}},
				{Type: Int, Text: "3", Location: Location{Line: 0, Column: 13}},
				{Type: Semicolon, Text: ";", Location: Location{Line: 0, Column: 14}},
			},
		},
		{
			input: `while (X1 <= 10) { X1 = X1 + 1; }`,
			tokens: []Token{
				{Type: Identifier, Text: "while", Location: Location{Line: 0, Column: 0}},
				{Type: Parenthesis, Text: "(", Location: Location{Line: 0, Column: 6}},
				{Type: Identifier, Text: "X1", Location: Location{Line: 0, Column: 7}},
				{Type: Relop, Text: "<=", Location: Location{Line: 0, Column: 10}},
				{Type: Int, Text: "10", Location: Location{Line: 0, Column: 13}},
				{Type: Parenthesis, Text: ")", Location: Location{Line: 0, Column: 15}},
				{Type: Brace, Text: "{", Location: Location{Line: 0, Column: 17}},
				{Type: Identifier, Text: "X1", Location: Location{Line: 0, Column: 19}},
				{Type: Assign, Text: "=", Location: Location{Line: 0, Column: 22}},
				{Type: Identifier, Text: "X1", Location: Location{Line: 0, Column: 24}},
				{Type: Operator, Text: "+", Location: Location{Line: 0, Column: 27}},
				{Type: Int, Text: "1", Location: Location{Line: 0, Column: 29}},
				{Type: Semicolon, Text: ";", Location: Location{Line: 0, Column: 30}},
				{Type: Brace, Text: "}", Location: Location{Line: 0, Column: 32}},
			},
		},
		{
			input: `i++; j--; !done; a != b;`,
			tokens: []Token{
				{Type: Identifier, Text: "i", Location: Location{Line: 0, Column: 0}},
				{Type: Operator, Text: "++", Location: Location{Line: 0, Column: 1}},
				{Type: Semicolon, Text: ";", Location: Location{Line: 0, Column: 3}},
				{Type: Identifier, Text: "j", Location: Location{Line: 0, Column: 5}},
				{Type: Operator, Text: "--", Location: Location{Line: 0, Column: 6}},
				{Type: Semicolon, Text: ";", Location: Location{Line: 0, Column: 8}},
				{Type: Operator, Text: "!", Location: Location{Line: 0, Column: 10}},
				{Type: Identifier, Text: "done", Location: Location{Line: 0, Column: 11}},
				{Type: Semicolon, Text: ";", Location: Location{Line: 0, Column: 15}},
				{Type: Identifier, Text: "a", Location: Location{Line: 0, Column: 17}},
				{Type: Relop, Text: "!=", Location: Location{Line: 0, Column: 19}},
				{Type: Identifier, Text: "b", Location: Location{Line: 0, Column: 22}},
				{Type: Semicolon, Text: ";", Location: Location{Line: 0, Column: 23}},
			},
		},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			t.Parallel()
			l := NewScanner(bytes.NewBufferString(test.input))
			var tokens []Token
			for i := l.Next(); i.Type != EOF; i = l.Next() {
				tokens = append(tokens, i)
			}
			if !slices.Equal(tokens, test.tokens) {
				t.Errorf("%v", tokens)
			}
		})
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	m.Run()
}
