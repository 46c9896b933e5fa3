package grammar

// scanState is the finite-state scanner position: plain code, inside a
// line comment, inside a block comment, or inside a character/string literal.
type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateLiteral
)

// stripNonCode returns a copy of src with comment and literal contents
// blanked out, so grammar-like text inside `//`, `/* */` or quoted literals
// can never be mistaken for a real declaration. Every replaced byte becomes
// a space and newlines are preserved, keeping offsets stable for anyone who
// wants to report positions against the original source.
func stripNonCode(src []byte) []byte {
	out := make([]byte, len(src))
	state := stateCode

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case stateCode:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				out[i] = ' '
			case c == '\'':
				state = stateLiteral
				out[i] = ' '
			default:
				out[i] = c
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
				out[i] = c
			} else {
				out[i] = ' '
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out[i] = ' '
				i++
				out[i] = ' '
				state = stateCode
			} else if c == '\n' {
				out[i] = c
			} else {
				out[i] = ' '
			}
		case stateLiteral:
			switch {
			case c == '\\' && i+1 < len(src):
				out[i] = ' '
				i++
				if src[i] == '\n' {
					out[i] = '\n'
				} else {
					out[i] = ' '
				}
			case c == '\'':
				state = stateCode
				out[i] = ' '
			case c == '\n':
				// Unterminated literal; resync at end of line.
				state = stateCode
				out[i] = c
			default:
				out[i] = ' '
			}
		}
	}

	return out
}

// isIdentStart reports whether c can begin a grammar identifier.
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentPart reports whether c can continue a grammar identifier.
func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// tokenize splits cleaned source text into a flat token stream of
// identifiers and single-character punctuation. Whitespace separates
// tokens and is never emitted.
func tokenize(clean []byte) []string {
	var tokens []string
	for i := 0; i < len(clean); i++ {
		c := clean[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		case isIdentStart(c):
			j := i + 1
			for j < len(clean) && isIdentPart(clean[j]) {
				j++
			}
			tokens = append(tokens, string(clean[i:j]))
			i = j - 1
		default:
			tokens = append(tokens, string(c))
		}
	}
	return tokens
}
