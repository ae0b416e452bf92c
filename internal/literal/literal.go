// Package literal parses stored list-of-string literals such as
// ['2 cups flour', "baker's yeast"] without evaluating them.
//
// Grammar:
//
//	list := '[' ws [ str { ws ',' ws str } [ ws ',' ] ] ws ']' ws EOF
//	str  := "'" { char | escape } "'" | '"' { char | escape } '"'
//
// Recognized escapes follow Python string literals: \\ \' \" \a \b \f \n \r \t \v,
// backslash-newline, octal \o to \ooo, \xHH, \uHHHH and \UHHHHHHHH. Hex escapes
// take exactly that many digits and must name a non-surrogate code point up to
// U+10FFFF. Named escapes (\N{...}) and any other input are rejected.
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("invalid list literal")

// SyntaxError reports where parsing stopped.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax.Error(), e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type parser struct {
	src string
	pos int
}

// ParseStringList parses s as a list of string literals.
func ParseStringList(s string) ([]string, error) {
	p := &parser{src: s}
	p.skipSpace()
	if !p.consume('[') {
		return nil, p.fail("expected '['")
	}
	out := []string{}
	p.skipSpace()
	if p.consume(']') {
		return out, p.end()
	}
	for {
		str, err := p.stringLit()
		if err != nil {
			return nil, err
		}
		out = append(out, str)
		p.skipSpace()
		if p.consume(']') {
			return out, p.end()
		}
		if !p.consume(',') {
			return nil, p.fail("expected ',' or ']'")
		}
		p.skipSpace()
		if p.consume(']') {
			return out, p.end()
		}
	}
}

func (p *parser) end() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.fail("unexpected trailing input")
	}
	return nil
}

func (p *parser) fail(msg string) error {
	return &SyntaxError{Offset: p.pos, Msg: msg}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) stringLit() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.fail("expected string")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.fail("expected quoted string")
	}
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		case c == '\n':
			return "", p.fail("newline in string")
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if r == utf8.RuneError && size == 1 {
				return "", p.fail("invalid UTF-8")
			}
			b.WriteString(p.src[p.pos : p.pos+size])
			p.pos += size
		}
	}
	return "", p.fail("unterminated string")
}

func (p *parser) escape(b *strings.Builder) error {
	if p.pos+1 >= len(p.src) {
		return p.fail("unterminated escape")
	}
	c := p.src[p.pos+1]
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case '\n':
		// line continuation
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		end := p.pos + 1
		for end < len(p.src) && end < p.pos+4 && p.src[end] >= '0' && p.src[end] <= '7' {
			end++
		}
		n, _ := strconv.ParseUint(p.src[p.pos+1:end], 8, 32)
		b.WriteRune(rune(n))
		p.pos = end
		return nil
	default:
		return p.fail(fmt.Sprintf("unsupported escape \\%c", c))
	}
	p.pos += 2
	return nil
}

// hexEscape decodes \x, \u or \U followed by exactly digits hex digits.
func (p *parser) hexEscape(b *strings.Builder, digits int) error {
	kind := p.src[p.pos+1]
	start := p.pos + 2
	if start+digits > len(p.src) {
		return p.fail(fmt.Sprintf("short \\%c escape", kind))
	}
	hex := p.src[start : start+digits]
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return p.fail(fmt.Sprintf("invalid \\%c escape", kind))
		}
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || n > utf8.MaxRune {
		return p.fail(fmt.Sprintf("\\%c escape out of range", kind))
	}
	if n >= 0xD800 && n <= 0xDFFF {
		return p.fail(fmt.Sprintf("\\%c escape is a surrogate code point", kind))
	}
	b.WriteRune(rune(n))
	p.pos = start + digits
	return nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
