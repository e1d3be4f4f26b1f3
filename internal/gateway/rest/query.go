package rest

import (
	"fmt"
	"strings"
	"unicode"
)

// The query surface is a fixed, closed set of operations, so requests are
// recognized with a small scanner instead of a general query-language
// executor. Field sub-selections after the operation are accepted and
// ignored; the full object shape is always returned.

// OpKind identifies one of the supported operations.
type OpKind int

const (
	OpAPIVersion OpKind = iota
	OpRecipes
	OpRecipe
)

// Operation is a parsed query request.
type Operation struct {
	Kind  OpKind
	Title string
}

type parser struct {
	input string
	pos   int
}

// ParseQuery extracts the requested operation from a query document such as
// `{ apiVersion }` or `query { recipe(title: "Pancakes") { title } }`.
func ParseQuery(query string) (Operation, error) {
	p := &parser{input: query}

	p.skipSpace()
	// Optional "query" keyword with an optional operation name.
	if ident := p.peekIdent(); ident == "query" {
		p.readIdent()
		p.skipSpace()
		if p.peekIdent() != "" {
			p.readIdent()
			p.skipSpace()
		}
	}

	if !p.consume('{') {
		return Operation{}, fmt.Errorf("expected selection set at position %d", p.pos)
	}

	p.skipSpace()
	field := p.readIdent()
	if field == "" {
		return Operation{}, fmt.Errorf("expected field name at position %d", p.pos)
	}

	switch field {
	case "apiVersion":
		return Operation{Kind: OpAPIVersion}, nil
	case "recipes":
		return Operation{Kind: OpRecipes}, nil
	case "recipe":
		title, err := p.parseTitleArgument()
		if err != nil {
			return Operation{}, err
		}
		return Operation{Kind: OpRecipe, Title: title}, nil
	default:
		return Operation{}, fmt.Errorf("unsupported operation %q", field)
	}
}

func (p *parser) parseTitleArgument() (string, error) {
	p.skipSpace()
	if !p.consume('(') {
		return "", fmt.Errorf("recipe requires a title argument")
	}
	p.skipSpace()
	if name := p.readIdent(); name != "title" {
		return "", fmt.Errorf("recipe takes a single argument %q", "title")
	}
	p.skipSpace()
	if !p.consume(':') {
		return "", fmt.Errorf("expected ':' after argument name")
	}
	p.skipSpace()
	title, err := p.readString()
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if !p.consume(')') {
		return "", fmt.Errorf("expected ')' after title argument")
	}
	return title, nil
}

// skipSpace advances past whitespace; commas are insignificant separators.
func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsSpace(c) && c != ',' {
			return
		}
		p.pos++
	}
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isIdentRune(c byte, first bool) bool {
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	return !first && c >= '0' && c <= '9'
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentRune(p.input[p.pos], p.pos == start) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) peekIdent() string {
	saved := p.pos
	ident := p.readIdent()
	p.pos = saved
	return ident
}

func (p *parser) readString() (string, error) {
	if !p.consume('"') {
		return "", fmt.Errorf("expected string value at position %d", p.pos)
	}
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		p.pos++
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			if p.pos >= len(p.input) {
				return "", fmt.Errorf("unterminated escape in string value")
			}
			esc := p.input[p.pos]
			p.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated string value")
}
