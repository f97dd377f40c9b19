// Package engine implements the tokenizer, substitution evaluator and
// sequence dispatcher for the riftconf configuration language. It plays
// the role RobertP-SyndicateLabs-SIC-lang's "compiler" package played for
// its own DSL: one package holding the whole interpreter, imported by
// the facade and by the CLI.
package engine

// Kind is the closed token-kind enumeration: a structural family, a
// family of statement introducers, and a family of expression tokens.
// It is intentionally a small integer, not
// a string, since it is compared in hot loops (the tokenizer runs once
// per word of every source file on every reload).
type Kind uint16

const (
	// Structural.
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindEOF
	KindComment
	KindEscape
	KindFiller
	KindJoin

	// Statement introducers.
	KindVarDeclaration
	KindEnumDeclaration
	KindVarAppend
	KindVarPrepend
	KindVarMerge
	KindVarInjection
	KindSectionBegin
	KindSectionAdd
	KindSectionDel
	KindInclude
	KindForBegin
	KindForEnd
	KindSeed
	KindPrint
	KindRestrict

	// Expressions: conditionals.
	KindIfLess
	KindIfLessEq
	KindIfMore
	KindIfMoreEq
	KindIfEq
	KindIfEqNot

	// Expressions: constants.
	KindTimestamp
	KindConstPi
	KindConstEuler
	KindConstTrue
	KindConstFalse

	// Expressions: unary math.
	KindOpSqrt
	KindOpCbrt
	KindOpAbs
	KindOpCeiling
	KindOpFloor
	KindOpRound
	KindOpCos
	KindOpSin
	KindOpTan
	KindOpAcos
	KindOpAsin
	KindOpAtan
	KindOpCosh
	KindOpSinh
	KindOpLn
	KindOpLog

	// Expressions: binary math.
	KindOpAdd
	KindOpSubstract
	KindOpMultiply
	KindOpDivide
	KindOpMod
	KindOpPow
	KindOpBiggest
	KindOpSmallest
	KindOpRandom

	// Expressions: ternary math.
	KindOpInterpolate
	KindOpLimit

	// Expressions: color.
	KindClRGB
	KindClRGBA
	KindClInterpolate
)

// String renders a Kind for diagnostics; grounded on
// RobertP-SyndicateLabs-SIC-lang's Token.String formatting in
// compiler/lexer.go.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	KindInvalid: "INVALID", KindString: "STRING", KindNumber: "NUMBER",
	KindEOF: "EOF", KindComment: "COMMENT", KindEscape: "ESCAPE",
	KindFiller: "FILLER", KindJoin: "JOIN",
	KindVarDeclaration: "VAR_DECLARATION", KindEnumDeclaration: "ENUM_DECLARATION",
	KindVarAppend: "VAR_APPEND", KindVarPrepend: "VAR_PREPEND", KindVarMerge: "VAR_MERGE",
	KindVarInjection: "VAR_INJECTION", KindSectionBegin: "SECTION_BEGIN",
	KindSectionAdd: "SECTION_ADD", KindSectionDel: "SECTION_DEL", KindInclude: "INCLUDE",
	KindForBegin: "FOR_BEGIN", KindForEnd: "FOR_END", KindSeed: "SEED",
	KindPrint: "PRINT", KindRestrict: "RESTRICT",
	KindIfLess: "IF_LESS", KindIfLessEq: "IF_LESS_EQ", KindIfMore: "IF_MORE",
	KindIfMoreEq: "IF_MORE_EQ", KindIfEq: "IF_EQ", KindIfEqNot: "IF_EQ_NOT",
	KindTimestamp: "TIMESTAMP", KindConstPi: "CONST_PI", KindConstEuler: "CONST_EULER",
	KindConstTrue: "CONST_TRUE", KindConstFalse: "CONST_FALSE",
	KindOpSqrt: "OP_SQRT", KindOpCbrt: "OP_CBRT", KindOpAbs: "OP_ABS",
	KindOpCeiling: "OP_CEILING", KindOpFloor: "OP_FLOOR", KindOpRound: "OP_ROUND",
	KindOpCos: "OP_COS", KindOpSin: "OP_SIN", KindOpTan: "OP_TAN",
	KindOpAcos: "OP_ACOS", KindOpAsin: "OP_ASIN", KindOpAtan: "OP_ATAN",
	KindOpCosh: "OP_COSH", KindOpSinh: "OP_SINH", KindOpLn: "OP_LN", KindOpLog: "OP_LOG",
	KindOpAdd: "OP_ADD", KindOpSubstract: "OP_SUBSTRACT", KindOpMultiply: "OP_MULTIPLY",
	KindOpDivide: "OP_DIVIDE", KindOpMod: "OP_MOD", KindOpPow: "OP_POW",
	KindOpBiggest: "OP_BIGGEST", KindOpSmallest: "OP_SMALLEST", KindOpRandom: "OP_RANDOM",
	KindOpInterpolate: "OP_INTERPOLATE", KindOpLimit: "OP_LIMIT",
	KindClRGB: "CL_RGB", KindClRGBA: "CL_RGBA", KindClInterpolate: "CL_INTERPOLATE",
}

// mathArity reports how many numeral tokens a math or color Kind consumes
// before producing a result. Grounded on original_source/src/substitution.c's
// dr_subtitution_apply dispatch, which groups token kinds by arity (0, 1, 2, 3
// for plain math; 3 or 4 for color).
func mathArity(k Kind) (int, bool) {
	switch k {
	case KindTimestamp, KindConstPi, KindConstEuler, KindConstTrue, KindConstFalse:
		return 0, true
	case KindOpSqrt, KindOpCbrt, KindOpAbs, KindOpCeiling, KindOpFloor, KindOpRound,
		KindOpCos, KindOpSin, KindOpTan, KindOpAcos, KindOpAsin, KindOpAtan,
		KindOpCosh, KindOpSinh, KindOpLn, KindOpLog:
		return 1, true
	case KindOpAdd, KindOpSubstract, KindOpMultiply, KindOpDivide, KindOpMod, KindOpPow,
		KindOpBiggest, KindOpSmallest, KindOpRandom:
		return 2, true
	case KindOpInterpolate, KindOpLimit:
		return 3, true
	case KindClRGB, KindClInterpolate:
		return 3, true
	case KindClRGBA:
		return 4, true
	default:
		return 0, false
	}
}

func isIfKind(k Kind) bool {
	switch k {
	case KindIfLess, KindIfLessEq, KindIfMore, KindIfMoreEq, KindIfEq, KindIfEqNot:
		return true
	default:
		return false
	}
}

func isColorKind(k Kind) bool {
	return k == KindClRGB || k == KindClRGBA || k == KindClInterpolate
}

// KeywordTable is the lexeme -> Kind dictionary consulted by the
// substitution evaluator and the sequence dispatcher. It is built once
// and cached, the way RobertP-SyndicateLabs-SIC-lang's package-level
// `keywords` map (compiler/lexer.go) is built once for its own DSL.
type KeywordTable map[string]Kind

// NewKeywordTable builds the lexeme table for the statement and
// expression keywords (LET, LET_ENUM, VAR, PREPEND, MERGE, SECTION,
// SECTION_ADD, SECTION_DEL, INCLUDE, FOR_EACH, FOR_END, SEED, PRINT,
// RESTRICT, plus the expression-operator lexemes). COMMENT, ESCAPE and
// FILLER are structural rather than named keywords, so this port picks
// single-character sigils that read naturally in a line-oriented config
// file and never collide with a hex-color literal like "#ff8800" — token
// matching is whole-word, so "#" as its own word is unambiguous.
func NewKeywordTable() KeywordTable {
	return KeywordTable{
		"#":    KindComment,
		"\\":   KindEscape,
		"$":    KindFiller,
		"JOIN": KindJoin,

		"LET":         KindVarDeclaration,
		"LET_ENUM":    KindEnumDeclaration,
		"VAR":         KindVarAppend,
		"PREPEND":     KindVarPrepend,
		"MERGE":       KindVarMerge,
		"%":           KindVarInjection,
		"SECTION":     KindSectionBegin,
		"SECTION_ADD": KindSectionAdd,
		"SECTION_DEL": KindSectionDel,
		"INCLUDE":     KindInclude,
		"FOR_EACH":    KindForBegin,
		"FOR_END":     KindForEnd,
		"SEED":        KindSeed,
		"PRINT":       KindPrint,
		"RESTRICT":    KindRestrict,

		"<":  KindIfLess,
		"<=": KindIfLessEq,
		">":  KindIfMore,
		">=": KindIfMoreEq,
		"==": KindIfEq,
		"!=": KindIfEqNot,

		"TIMESTAMP": KindTimestamp,
		"PI":        KindConstPi,
		"EULER":     KindConstEuler,
		"TRUE":      KindConstTrue,
		"FALSE":     KindConstFalse,

		"SQRT":  KindOpSqrt,
		"CBRT":  KindOpCbrt,
		"ABS":   KindOpAbs,
		"CEIL":  KindOpCeiling,
		"FLOOR": KindOpFloor,
		"ROUND": KindOpRound,
		"COS":   KindOpCos,
		"SIN":   KindOpSin,
		"TAN":   KindOpTan,
		"ACOS":  KindOpAcos,
		"ASIN":  KindOpAsin,
		"ATAN":  KindOpAtan,
		"COSH":  KindOpCosh,
		"SINH":  KindOpSinh,
		"LN":    KindOpLn,
		"LOG":   KindOpLog,

		"+":      KindOpAdd,
		"-":      KindOpSubstract,
		"*":      KindOpMultiply,
		"/":      KindOpDivide,
		"MOD":    KindOpMod,
		"POW":    KindOpPow,
		"MAX":    KindOpBiggest,
		"MIN":    KindOpSmallest,
		"RANDOM": KindOpRandom,

		"ITP":   KindOpInterpolate,
		"LIMIT": KindOpLimit,

		"RGB":   KindClRGB,
		"RGBA":  KindClRGBA,
		"CLITP": KindClInterpolate,
	}
}

// Match looks up a raw word against the table, defaulting to KindString
// for anything unrecognized — mirrors dr_token_match / token_match in
// original_source, which never fails, it just falls through.
func (t KeywordTable) Match(word string) Kind {
	if k, ok := t[word]; ok {
		return k
	}
	return KindString
}
