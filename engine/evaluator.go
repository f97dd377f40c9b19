package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// GetToken reads the next raw token and, unless it is invalid, expands it
// through Apply. Grounded on context_get_token
// (original_source/src/context.c).
func (c *Context) GetToken(mathResult *float64) (string, Kind) {
	raw, kind := c.GetTokenRaw()
	if kind == KindInvalid {
		return raw, KindInvalid
	}
	return c.Apply(raw, mathResult)
}

// GetTokenNumeral reads and expands the next token, then coerces it to a
// float64: numbers pass through, strings starting with '#' are parsed as
// hex colors and packed to their ARGB integer, any other string is parsed
// with strconv (falling back to 0 the way strtod does on total failure).
// Grounded on context_get_token_numeral.
func (c *Context) GetTokenNumeral() (float64, Kind) {
	var result float64
	token, kind := c.GetToken(&result)
	switch kind {
	case KindNumber:
		return result, KindNumber
	case KindString:
		if strings.HasPrefix(token, "#") {
			col, ok := colorFromString(token)
			if !ok {
				return 0, KindInvalid
			}
			return float64(col.packARGB()), KindNumber
		}
		v, _ := strconv.ParseFloat(strings.TrimSpace(token), 64)
		return v, KindNumber
	default:
		return 0, KindInvalid
	}
}

// Apply is the substitution evaluator's entry point. It
// inspects raw against the cached token table and, on a match, dispatches
// to the construct's handler; a matched keyword with no handler here (a
// statement introducer) is returned unchanged with its own Kind so the
// dispatcher can classify it; on no match it returns raw unchanged as
// KindString. Grounded function-for-function on dr_subtitution_apply
// (original_source/src/substitution.c).
func (c *Context) Apply(raw string, mathResult *float64) (string, Kind) {
	if c.Depth >= MaxDepth {
		return "", KindInvalid
	}
	c.Depth++
	defer func() { c.Depth-- }()

	kind := c.Store.Tokens.Match(raw)

	switch kind {
	case KindComment:
		return "", KindInvalid

	case KindEOF:
		c.EOFReached = true
		c.EOLReached = true
		return "", KindInvalid

	case KindEscape:
		c.EOLReached = false
		return c.GetTokenRaw()

	case KindFiller:
		return c.GetToken(mathResult)

	case KindJoin:
		return c.applyJoin(mathResult)

	case KindVarInjection:
		return c.applyVariable(mathResult)

	case KindIfLess, KindIfLessEq, KindIfMore, KindIfMoreEq, KindIfEq, KindIfEqNot:
		return c.applyIf(kind, mathResult)

	default:
		if n, ok := mathArity(kind); ok {
			if isColorKind(kind) {
				return c.applyMathColor(kind, n, mathResult)
			}
			return c.applyMath(kind, n, mathResult)
		}
		return raw, kind
	}
}

// applyIf mirrors _if: reads two numeral operands, evaluates the
// comparison, then always consumes exactly two further tokens (the
// then-branch and the else-branch) regardless of which one is kept — this
// is the original's evaluation-order quirk, preserved verbatim rather
// than fixed.
func (c *Context) applyIf(kind Kind, mathResult *float64) (string, Kind) {
	a, k1 := c.GetTokenNumeral()
	b, k2 := c.GetTokenNumeral()
	if k1 == KindInvalid || k2 == KindInvalid {
		return "", KindInvalid
	}

	var result bool
	switch kind {
	case KindIfLess:
		result = a < b
	case KindIfLessEq:
		result = a <= b
	case KindIfMore:
		result = a > b
	case KindIfMoreEq:
		result = a >= b
	case KindIfEq:
		result = a == b
	case KindIfEqNot:
		result = a != b
	default:
		return "", KindInvalid
	}

	// TODO: the original always evaluates the then-branch first (for its
	// side effects and to obtain a return kind) before deciding whether
	// to discard it in favor of the else-branch; that evaluation order
	// is kept here rather than short-circuited.
	thenText, thenKind := c.GetToken(mathResult)
	if result {
		c.GetToken(nil)
		return thenText, thenKind
	}
	return c.GetToken(mathResult)
}

// applyJoin reads two tokens and concatenates them, truncating to
// TokenMaxLen-1 bytes. Grounded on _join.
func (c *Context) applyJoin(mathResult *float64) (string, Kind) {
	a, k1 := c.GetToken(nil)
	b, k2 := c.GetToken(nil)
	if k1 == KindInvalid || k2 == KindInvalid {
		return "", KindInvalid
	}
	joined := a + b
	if len(joined) > TokenMaxLen-1 {
		joined = joined[:TokenMaxLen-1]
	}
	if mathResult != nil {
		v, _ := strconv.ParseFloat(joined, 64)
		*mathResult = v
	}
	return joined, KindString
}

// applyVariable resolves VAR_INJECTION: reads the name, and checks it
// against the ITERATION namespace first — iterate (dispatcher.go) binds
// a FOR_EACH alias there to a single global word index for the current
// pass, not a group, so that resolves to exactly one word. Failing that,
// it looks the name up in keys_vars, points the variable replay cursor
// at its group, and reads the (now-replayed) first value as the result.
// Grounded on _variable, generalized with a PARAMETER fallback: when the
// name is neither an iteration alias nor a declared variable, a pushed
// parameter of the same name is tried instead, yielding a single literal
// value rather than a replayed group.
func (c *Context) applyVariable(mathResult *float64) (string, Kind) {
	name, k := c.GetToken(nil)
	if k == KindInvalid {
		return "", KindInvalid
	}
	if idx, ok := c.Store.KeysVars.Find(name, NSIteration); ok {
		val := c.Store.Vars.WordAtIndex(int(idx))
		if mathResult != nil {
			v, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
			*mathResult = v
		}
		return val, KindString
	}
	group, ok := c.Store.KeysVars.Find(name, NSVariable)
	if !ok {
		if val, ok := c.Store.Parameters[name]; ok {
			if mathResult != nil {
				v, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
				*mathResult = v
			}
			return val, KindString
		}
		return "", KindInvalid
	}
	c.VarGroup = int(group)
	c.VarI = 0
	return c.GetToken(mathResult)
}

// applyMath reads n numeral operands and evaluates a scalar math
// operation, grounded case-for-case on _math's switch, including its
// exact constants (PI, and EULER as the Euler-Mascheroni constant, not
// Euler's number).
func (c *Context) applyMath(kind Kind, n int, mathResult *float64) (string, Kind) {
	var d [3]float64
	for i := 0; i < n; i++ {
		v, k := c.GetTokenNumeral()
		if k == KindInvalid {
			return "", KindInvalid
		}
		d[i] = v
	}

	var result float64
	switch kind {
	case KindTimestamp:
		result = float64(time.Now().Unix())
	case KindConstPi:
		result = 3.1415926535897932
	case KindConstEuler:
		result = 0.5772156649015328
	case KindConstTrue:
		result = 1.0
	case KindConstFalse:
		result = 0.0

	case KindOpSqrt:
		result = math.Sqrt(d[0])
	case KindOpCbrt:
		result = math.Cbrt(d[0])
	case KindOpAbs:
		result = math.Abs(d[0])
	case KindOpCeiling:
		result = math.Ceil(d[0])
	case KindOpFloor:
		result = math.Floor(d[0])
	case KindOpRound:
		result = math.Round(d[0])
	case KindOpCos:
		result = math.Cos(d[0])
	case KindOpSin:
		result = math.Sin(d[0])
	case KindOpTan:
		result = math.Tan(d[0])
	case KindOpAcos:
		result = math.Acos(d[0])
	case KindOpAsin:
		result = math.Asin(d[0])
	case KindOpAtan:
		result = math.Atan(d[0])
	case KindOpCosh:
		result = math.Cosh(d[0])
	case KindOpSinh:
		result = math.Sinh(d[0])
	case KindOpLn:
		result = math.Log(d[0])
	case KindOpLog:
		result = math.Log10(d[0])

	case KindOpAdd:
		result = d[0] + d[1]
	case KindOpSubstract:
		result = d[0] - d[1]
	case KindOpMultiply:
		result = d[0] * d[1]
	case KindOpDivide:
		result = d[0] / d[1]
	case KindOpMod:
		result = math.Mod(d[0], d[1])
	case KindOpPow:
		result = math.Pow(d[0], d[1])
	case KindOpBiggest:
		result = math.Max(d[0], d[1])
	case KindOpSmallest:
		result = math.Min(d[0], d[1])
	case KindOpRandom:
		lo, hi := d[0], d[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		result = lo + c.Rand.Float64()*(hi-lo)

	case KindOpInterpolate:
		result = d[0] + (d[1]-d[0])*d[2]
	case KindOpLimit:
		result = math.Min(math.Max(d[0], d[1]), d[2])

	default:
		return "", KindInvalid
	}

	if mathResult != nil {
		*mathResult = result
		return "", KindNumber
	}
	return fmt.Sprintf("%.8f", result), KindNumber
}

// applyMathColor evaluates the color constructs (RGB/RGBA/CLITP), grounded
// on _math_cl.
func (c *Context) applyMathColor(kind Kind, n int, mathResult *float64) (string, Kind) {
	var d [4]float64
	var cl [4]color
	for i := 0; i < n; i++ {
		v, k := c.GetTokenNumeral()
		if k == KindInvalid {
			return "", KindInvalid
		}
		d[i] = v
		cl[i] = colorFromARGBUint(v)
	}

	var result color
	switch kind {
	case KindClRGB:
		result = colorFromRGBA(d[0], d[1], d[2], 255)
	case KindClInterpolate:
		result = colorInterpolate(cl[0], cl[1], d[2])
	case KindClRGBA:
		result = colorFromRGBA(d[0], d[1], d[2], d[3])
	default:
		return "", KindInvalid
	}

	packed := result.packARGB()
	if mathResult != nil {
		*mathResult = float64(packed)
		return "", KindNumber
	}
	return fmt.Sprintf("%d", packed), KindNumber
}
