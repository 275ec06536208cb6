package calc

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r >= '0' && r <= '9' || r == '.':
			n, err := scanNumber(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:n], pos: i})
			i = n
		case r == '*' && strings.HasPrefix(s[i:], "**"):
			toks = append(toks, token{kind: tokPow, text: "**", pos: i})
			i += 2
		default:
			kind, ok := operators[r]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, r, i)
			}
			toks = append(toks, token{kind: kind, text: string(r), pos: i})
			i += size
		}
	}
	return append(toks, token{kind: tokEOF, text: "end of input", pos: len(s)}), nil
}

var operators = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

// scanNumber returns the end offset of the numeric literal starting at i.
// Accepted forms: 12, 1_000, 1.5, 1., .5, 1e3, 2.5E-3.
func scanNumber(s string, i int) (int, error) {
	start := i
	digits := func() (int, error) {
		n := 0
		for i < len(s) {
			c := s[i]
			switch {
			case c >= '0' && c <= '9':
				n++
				i++
			case c == '_' && n > 0 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9':
				i++
			case c == '_':
				return n, fmt.Errorf("%w: invalid underscore in number at offset %d", ErrSyntax, i)
			default:
				return n, nil
			}
		}
		return n, nil
	}

	intDigits, err := digits()
	if err != nil {
		return 0, err
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		if fracDigits, err = digits(); err != nil {
			return 0, err
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, ".", start)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		n, err := digits()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: malformed exponent at offset %d", ErrSyntax, start)
		}
	}
	return i, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// expr = term { ("+"|"-") term }
func (p *parser) expr() (Value, error) {
	left, err := p.term()
	if err != nil {
		return Value{}, err
	}
	for {
		op := p.peek().kind
		if op != tokPlus && op != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return Value{}, err
		}
		if op == tokPlus {
			left, err = add(left, right)
		} else {
			left, err = sub(left, right)
		}
		if err != nil {
			return Value{}, err
		}
	}
}

// term = unary { ("*"|"/") unary }
func (p *parser) term() (Value, error) {
	left, err := p.unary()
	if err != nil {
		return Value{}, err
	}
	for {
		op := p.peek().kind
		if op != tokStar && op != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return Value{}, err
		}
		if op == tokStar {
			left, err = mul(left, right)
		} else {
			left, err = div(left, right)
		}
		if err != nil {
			return Value{}, err
		}
	}
}

// unary = ("+"|"-") unary | power
func (p *parser) unary() (Value, error) {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.unary()
	case tokMinus:
		p.next()
		v, err := p.unary()
		if err != nil {
			return Value{}, err
		}
		return neg(v), nil
	}
	return p.power()
}

// power = atom [ "**" unary ]; right-associative and binds tighter than a
// unary sign on its left, so -2**2 is -4 and 2**-1 is 0.5.
func (p *parser) power() (Value, error) {
	base, err := p.atom()
	if err != nil {
		return Value{}, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return Value{}, err
	}
	return pow(base, exp)
}

// atom = number | "(" expr ")"
func (p *parser) atom() (Value, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return parseLiteral(t)
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return Value{}, err
		}
		if c := p.next(); c.kind != tokRParen {
			return Value{}, fmt.Errorf("%w: expected ')' at offset %d, got %q", ErrSyntax, c.pos, c.text)
		}
		return v, nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, t.text, t.pos)
	}
}

func parseLiteral(t token) (Value, error) {
	text := strings.ReplaceAll(t.text, "_", "")
	if !strings.ContainsAny(text, ".eE") {
		if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
			return Value{}, fmt.Errorf("%w: leading zeros in integer literal at offset %d", ErrSyntax, t.pos)
		}
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Value{}, fmt.Errorf("%w: invalid integer %q", ErrSyntax, t.text)
		}
		return checkedInt(i)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Out-of-range literals round to ±Inf or 0, as float literals do.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w: invalid number %q", ErrSyntax, t.text)
		}
	}
	return Float(f), nil
}
