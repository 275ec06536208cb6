// Package calc evaluates plain arithmetic expressions typed into a chat.
//
// Only numeric literals, + - * / **, unary signs and parentheses are accepted.
// Integer arithmetic is exact; division and any float operand produce a float.
package calc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

const (
	// MaxExprLen bounds the input accepted by Eval.
	MaxExprLen = 256
	// maxIntBits bounds integer results so a short expression like 9**9**9
	// cannot allocate unbounded memory.
	maxIntBits = 4096
)

var (
	ErrSyntax         = errors.New("syntax error")
	ErrTooLong        = errors.New("expression too long")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("numeric result out of range")
	ErrDomain         = errors.New("math domain error")
)

// Value is an evaluation result: an exact integer or a float64.
type Value struct {
	i     *big.Int
	f     float64
	isInt bool
}

// Int returns an integer Value.
func Int(i *big.Int) Value { return Value{i: i, isInt: true} }

// Float returns a float Value.
func Float(f float64) Value { return Value{f: f} }

// IsInt reports whether v holds an exact integer.
func (v Value) IsInt() bool { return v.isInt }

// Float64 converts v to a float64. Integers too large for a float64 yield ErrOverflow.
func (v Value) Float64() (float64, error) {
	if !v.isInt {
		return v.f, nil
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: integer too large to convert to float", ErrOverflow)
	}
	return f, nil
}

// String renders integers in full and floats with FormatFloat.
func (v Value) String() string {
	if v.isInt {
		return v.i.String()
	}
	return FormatFloat(v.f)
}

// Eval parses and evaluates expr.
func Eval(expr string) (Value, error) {
	if len(expr) > MaxExprLen {
		return Value{}, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLong, len(expr), MaxExprLen)
	}
	toks, err := lex(expr)
	if err != nil {
		return Value{}, err
	}
	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return Value{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Value{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, t.text, t.pos)
	}
	return v, nil
}

func add(a, b Value) (Value, error) {
	if a.isInt && b.isInt {
		return checkedInt(new(big.Int).Add(a.i, b.i))
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return Float(x + y), nil
}

func sub(a, b Value) (Value, error) {
	if a.isInt && b.isInt {
		return checkedInt(new(big.Int).Sub(a.i, b.i))
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return Float(x - y), nil
}

func mul(a, b Value) (Value, error) {
	if a.isInt && b.isInt {
		return checkedInt(new(big.Int).Mul(a.i, b.i))
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return Float(x * y), nil
}

func div(a, b Value) (Value, error) {
	if a.isInt && b.isInt {
		if b.i.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		// Rat gives a correctly rounded quotient even when the operands
		// themselves do not fit in a float64.
		f, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		if math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("%w: integer division result too large for a float", ErrOverflow)
		}
		return Float(f), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return Float(x / y), nil
}

func pow(base, exp Value) (Value, error) {
	if base.isInt && exp.isInt && exp.i.Sign() >= 0 {
		return intPow(base.i, exp.i)
	}
	x, y, err := floats(base, exp)
	if err != nil {
		return Value{}, err
	}
	if x == 0 && y < 0 {
		return Value{}, fmt.Errorf("%w: zero raised to a negative power", ErrDivisionByZero)
	}
	if x < 0 && !math.IsInf(y, 0) && y != math.Trunc(y) {
		return Value{}, fmt.Errorf("%w: negative number raised to a fractional power", ErrDomain)
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Value{}, ErrOverflow
	}
	return Float(r), nil
}

func intPow(base, exp *big.Int) (Value, error) {
	abs := new(big.Int).Abs(base)
	if abs.Cmp(big.NewInt(1)) > 0 {
		// (bitlen-1)*exp is a lower bound on the result size.
		if !exp.IsInt64() || exp.Int64() > maxIntBits || int64(abs.BitLen()-1)*exp.Int64() > maxIntBits {
			return Value{}, ErrOverflow
		}
	}
	return checkedInt(new(big.Int).Exp(base, exp, nil))
}

func neg(v Value) Value {
	if v.isInt {
		return Int(new(big.Int).Neg(v.i))
	}
	return Float(-v.f)
}

func checkedInt(i *big.Int) (Value, error) {
	if i.BitLen() > maxIntBits {
		return Value{}, ErrOverflow
	}
	return Int(i), nil
}

func floats(a, b Value) (float64, float64, error) {
	x, err := a.Float64()
	if err != nil {
		return 0, 0, err
	}
	y, err := b.Float64()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
