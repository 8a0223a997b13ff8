// Package lexer turns IMP source text into a flat stream of string tokens.
//
// A token is a maximal run of same-class characters (letters, digits, or
// "other") or a single delimiter character. Whitespace separates runs and is
// never itself a token. There is no token struct: the stream is a plain
// []string and a token's position is its index in the stream.
package lexer

// Class is the character class a byte belongs to. Every byte belongs to
// exactly one class.
type Class uint8

const (
	ClassWhite Class = iota // whitespace: separates runs, never emitted
	ClassAlpha              // ASCII letters
	ClassDigit              // ASCII decimal digits
	ClassOther              // everything else, including bytes >= 0x80
)

// String returns the class name for debug output.
func (c Class) String() string {
	switch c {
	case ClassWhite:
		return "white"
	case ClassAlpha:
		return "alpha"
	case ClassDigit:
		return "digit"
	case ClassOther:
		return "other"
	default:
		return "unknown"
	}
}

// ASCII character lookup tables for fast classification. Full byte range so
// classification is total without bounds checks.
var (
	isWhite     [256]bool
	isAlpha     [256]bool
	isDigit     [256]bool
	isDelimiter [256]bool
	classOf     [256]Class
	delimString [256]string // pre-allocated single-char delimiter strings
)

func init() {
	for i := 0; i < 256; i++ {
		ch := byte(i)
		isWhite[i] = ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == 0
		isAlpha[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		switch {
		case isWhite[i]:
			classOf[i] = ClassWhite
		case isAlpha[i]:
			classOf[i] = ClassAlpha
		case isDigit[i]:
			classOf[i] = ClassDigit
		default:
			classOf[i] = ClassOther
		}
	}

	isDelimiter['('] = true
	isDelimiter[')'] = true
	delimString['('] = "("
	delimString[')'] = ")"
}

// Classify returns the character class of ch.
func Classify(ch byte) Class { return classOf[ch] }

// IsWhite reports whether ch is whitespace: space, tab, newline, carriage
// return, form feed, or NUL.
func IsWhite(ch byte) bool { return isWhite[ch] }

// IsAlpha reports whether ch is an ASCII letter.
func IsAlpha(ch byte) bool { return isAlpha[ch] }

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit(ch byte) bool { return isDigit[ch] }

// IsDelimiter reports whether ch always forms its own single-character token.
func IsDelimiter(ch byte) bool { return isDelimiter[ch] }

// Tokenize converts source into an ordered token stream in a single
// left-to-right pass.
//
// A `(` or `)` flushes the current run and is emitted as its own token.
// Whitespace flushes the current run and is discarded. Any other character
// extends the current run when its class matches, or flushes the run and
// starts a new one when it differs. The trailing run is flushed at end of
// input. Tokenize never emits an empty token.
//
// Runs of "other"-class characters coalesce exactly like letters and digits:
// "==" is one token, but so is "=+". Rejecting unrecognized operator tokens
// is the parser's job, not the tokenizer's.
func Tokenize(source string) []string {
	tokens := []string{}
	runStart := -1 // -1 means no run is open
	runClass := ClassOther

	flush := func(end int) {
		if runStart >= 0 {
			tokens = append(tokens, source[runStart:end])
			runStart = -1
		}
	}

	for i := 0; i < len(source); i++ {
		ch := source[i]
		switch {
		case isDelimiter[ch]:
			flush(i)
			tokens = append(tokens, delimString[ch])
			runClass = ClassOther
		case isWhite[ch]:
			flush(i)
		default:
			cl := classOf[ch]
			if runStart >= 0 && cl != runClass {
				flush(i)
			}
			if runStart < 0 {
				runStart = i
				runClass = cl
			}
		}
	}
	flush(len(source))

	return tokens
}
