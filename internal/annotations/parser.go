// Package annotations parses //heysync:: directives found in doc comments.
package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/fotap/heysync/internal/errors"
)

// Prefix starts every directive line.
const Prefix = "//heysync::"

// Directive is a parsed //heysync::<kind> line.
type Directive struct {
	Kind     string
	Options  []*Option
	Location errors.SourceLocation
	Raw      string
}

type grammar struct {
	Kind    string    `parser:"Comment Heysync Separator @Ident"`
	Options []*Option `parser:"@@*"`
}

// Option is one -Key or -Key=value item.
type Option struct {
	Pos   lexer.Position
	Key   string  `parser:"'-' @Ident"`
	Value *string `parser:"( '=' @(String | Ident | Number) )?"`
}

// Lookup returns the option named key.
func (d *Directive) Lookup(key string) (*Option, bool) {
	for _, o := range d.Options {
		if o.Key == key {
			return o, true
		}
	}
	return nil, false
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//`},
	{Name: "Heysync", Pattern: `heysync\b`},
	{Name: "Separator", Pattern: `::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[-=]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Parser parses directive lines.
type Parser struct {
	parser *participle.Parser[grammar]
}

// NewParser builds the directive grammar.
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[grammar](
			participle.Lexer(directiveLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		),
	}
}

// IsDirective reports whether line is a heysync directive.
func IsDirective(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Prefix)
}

// Parse parses one directive line and checks it against the known schemas.
func (p *Parser) Parse(line string, loc errors.SourceLocation) (*Directive, error) {
	raw := strings.TrimSpace(line)
	g, err := p.parser.ParseString(loc.File, raw)
	if err != nil {
		perr := errors.WrapParseError("directive "+raw, err)
		perr.WithLocation(loc)
		return nil, perr
	}
	d := &Directive{Kind: g.Kind, Options: g.Options, Location: loc, Raw: raw}

	if err := validate(d); err != nil {
		return nil, err
	}
	return d, nil
}
