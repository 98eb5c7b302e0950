package template

// TokenType discriminates the two kinds of template tokens.
type TokenType int

const (
	// TokenLiteral is a run of template text copied verbatim into the
	// compiled pattern.
	TokenLiteral TokenType = iota
	// TokenPlaceholder is a well-formed `{{marker?key(@n)?}}` reference.
	TokenPlaceholder
)

// Token is one lexed unit of a template string.
type Token struct {
	Type     TokenType
	Value    string // literal text, or the raw `{{...}}` source
	Marker   string // "", "#", or one of the special markers
	Key      string
	Back     int // N from `{{#key@N}}`; 1 when omitted
	Position int // byte offset of the token in the template
}

// Lex splits a template into literal runs and placeholder tokens.
//
// A `{{` sequence whose body does not parse as a placeholder (bad marker,
// empty key, stray characters, missing `}}`) is not an error: it is kept as
// literal text, exactly like a non-matching occurrence in the reference
// implementation. The regex engine later decides whether the residue is
// valid pattern syntax.
func Lex(input string) []Token {
	var tokens []Token
	literalStart := 0
	pos := 0

	flushLiteral := func(end int) {
		if end > literalStart {
			tokens = append(tokens, Token{
				Type:     TokenLiteral,
				Value:    input[literalStart:end],
				Position: literalStart,
			})
		}
	}

	for pos < len(input) {
		if input[pos] != '{' || pos+1 >= len(input) || input[pos+1] != '{' {
			pos++
			continue
		}
		tok, end, ok := lexPlaceholder(input, pos)
		if !ok {
			// Not a placeholder after all; the brace stays literal. Advance
			// a single byte so a placeholder starting at the next brace
			// (as in "{{{key}}") is still found.
			pos++
			continue
		}
		flushLiteral(pos)
		tokens = append(tokens, tok)
		pos = end
		literalStart = end
	}
	flushLiteral(len(input))
	return tokens
}

// lexPlaceholder parses a placeholder starting at the `{{` found at start.
// Returns the token, the offset just past the closing `}}`, and whether the
// body was well formed.
func lexPlaceholder(input string, start int) (Token, int, bool) {
	i := start + 2 // skip "{{"
	tok := Token{Type: TokenPlaceholder, Back: 1, Position: start}

	if i < len(input) && input[i] == '#' {
		tok.Marker = "#"
		i++
	} else if marker, n := matchMarker(input[i:]); n > 0 {
		tok.Marker = marker
		i += n
	}

	keyStart := i
	for i < len(input) && isWordChar(input[i]) {
		i++
	}
	if i == keyStart {
		return Token{}, 0, false
	}
	tok.Key = input[keyStart:i]

	// `@N` selects how many occurrences back a backreference points; it is
	// meaningless on anything but `#`.
	if i < len(input) && input[i] == '@' {
		if tok.Marker != "#" {
			return Token{}, 0, false
		}
		i++
		numStart := i
		for i < len(input) && input[i] >= '0' && input[i] <= '9' {
			i++
		}
		if i == numStart {
			return Token{}, 0, false
		}
		n := 0
		for _, c := range input[numStart:i] {
			n = n*10 + int(c-'0')
		}
		if n < 1 {
			return Token{}, 0, false
		}
		tok.Back = n
	}

	if i+1 >= len(input) || input[i] != '}' || input[i+1] != '}' {
		return Token{}, 0, false
	}
	tok.Value = input[start : i+2]
	return tok, i + 2, true
}

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
