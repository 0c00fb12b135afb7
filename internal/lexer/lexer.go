package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fstringState tracks which half of an f-string the lexer is inside.
type fstringState int

const (
	fsLiteral fstringState = iota // between quotes, outside braces
	fsExpr                        // inside a {...} replacement field
)

// fstringFrame is one level of (possibly nested) f-string context.
type fstringFrame struct {
	quote      byte
	triple     bool
	raw        bool
	state      fstringState
	braceDepth int
}

// Lexer scans Python-family source into tokens. Indentation is turned
// into INDENT/DEDENT pairs; every physical line break on a non-blank
// line produces a NEWLINE token. The lexer is bracket-unaware: the
// parser consumes line-structure tokens inside aggregate literals.
type Lexer struct {
	source         string
	pos            int
	atLineStart    bool
	indents        []int
	pendingDedents int
	fstack         []*fstringFrame
}

// New creates a lexer over the given source buffer.
func New(source string) *Lexer {
	return &Lexer{
		source:      source,
		atLineStart: true,
		indents:     []int{0},
	}
}

func (l *Lexer) makeToken(tt TokenType, start int) Token {
	return Token{Type: tt, Literal: l.source[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) errorToken(msg string, start int) Token {
	return Token{Type: TokenError, Literal: msg, Start: start, End: l.pos}
}

func (l *Lexer) topFString() *fstringFrame {
	if len(l.fstack) == 0 {
		return nil
	}
	return l.fstack[len(l.fstack)-1]
}

func (l *Lexer) peekByte(off int) byte {
	if l.pos+off >= len(l.source) {
		return 0
	}
	return l.source[l.pos+off]
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	if l.pendingDedents > 0 {
		l.pendingDedents--
		return Token{Type: TokenDedent, Start: l.pos, End: l.pos}
	}

	if top := l.topFString(); top != nil && top.state == fsLiteral {
		return l.lexFStringLiteral(top)
	}

	if l.atLineStart {
		if tok, ok := l.handleIndentation(); ok {
			return tok
		}
	}

	l.skipInsignificant()

	if l.pos >= len(l.source) {
		if len(l.indents) > 1 {
			l.pendingDedents = len(l.indents) - 1
			l.indents = l.indents[:1]
			l.pendingDedents--
			return Token{Type: TokenDedent, Start: l.pos, End: l.pos}
		}
		return Token{Type: TokenEOF, Start: l.pos, End: l.pos}
	}

	c := l.source[l.pos]

	if c == '\n' || c == '\r' {
		start := l.pos
		if c == '\r' {
			l.pos++
		}
		if l.pos < len(l.source) && l.source[l.pos] == '\n' {
			l.pos++
		}
		l.atLineStart = true
		return Token{Type: TokenNewline, Literal: "\n", Start: start, End: l.pos}
	}

	if c == '\'' || c == '"' {
		return l.lexString(l.pos, 0)
	}

	if isIdentStart(rune(c)) || c >= utf8.RuneSelf {
		if n, ok := l.stringPrefixLen(); ok {
			return l.lexString(l.pos, n)
		}
		return l.lexIdentifier()
	}

	if isDigit(c) || (c == '.' && isDigit(l.peekByte(1))) {
		return l.lexNumber()
	}

	return l.lexOperator()
}

// handleIndentation measures leading whitespace at the start of a
// logical line. Blank and comment-only lines are consumed entirely and
// produce no tokens. Returns a token only for INDENT, DEDENT, or an
// inconsistent-dedent error.
func (l *Lexer) handleIndentation() (Token, bool) {
	for {
		lineStart := l.pos
		width := 0
		for l.pos < len(l.source) {
			switch l.source[l.pos] {
			case ' ':
				width++
				l.pos++
				continue
			case '\t':
				width += 8 - width%8
				l.pos++
				continue
			}
			break
		}

		if l.pos >= len(l.source) {
			l.atLineStart = false
			return Token{}, false
		}

		// Blank or comment-only lines carry no indentation meaning.
		c := l.source[l.pos]
		if c == '#' {
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if c == '\n' || c == '\r' {
			if c == '\r' {
				l.pos++
			}
			if l.pos < len(l.source) && l.source[l.pos] == '\n' {
				l.pos++
			}
			continue
		}

		l.atLineStart = false
		cur := l.indents[len(l.indents)-1]
		switch {
		case width > cur:
			l.indents = append(l.indents, width)
			return Token{Type: TokenIndent, Start: lineStart, End: l.pos}, true
		case width < cur:
			count := 0
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				count++
			}
			if l.indents[len(l.indents)-1] != width {
				return l.errorToken("unindent does not match any outer indentation level", lineStart), true
			}
			l.pendingDedents = count - 1
			return Token{Type: TokenDedent, Start: lineStart, End: l.pos}, true
		default:
			return Token{}, false
		}
	}
}

// skipInsignificant consumes spaces, tabs, comments, and backslash line
// continuations between tokens on a line.
func (l *Lexer) skipInsignificant() {
	for l.pos < len(l.source) {
		switch c := l.source[l.pos]; {
		case c == ' ' || c == '\t':
			l.pos++
		case c == '#':
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}
		case c == '\\':
			// Explicit line joining.
			next := l.peekByte(1)
			if next == '\n' {
				l.pos += 2
			} else if next == '\r' && l.peekByte(2) == '\n' {
				l.pos += 3
			} else {
				return
			}
		default:
			return
		}
	}
}

// stringPrefixLen reports whether the identifier characters at the
// current position form a string prefix (r, b, f, u and two-letter
// combinations) immediately followed by a quote.
func (l *Lexer) stringPrefixLen() (int, bool) {
	n := 0
	for n < 2 {
		c := l.peekByte(n)
		switch c {
		case 'r', 'R', 'b', 'B', 'f', 'F', 'u', 'U':
			n++
			continue
		}
		break
	}
	if n == 0 {
		return 0, false
	}
	q := l.peekByte(n)
	if q == '\'' || q == '"' {
		return n, true
	}
	return 0, false
}

func (l *Lexer) lexIdentifier() Token {
	start := l.pos
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if !isIdentContinue(r) {
			break
		}
		l.pos += size
	}
	text := l.source[start:l.pos]
	if kw, ok := keywords[text]; ok {
		return Token{Type: kw, Literal: text, Start: start, End: l.pos}
	}
	return Token{Type: TokenIdentifier, Literal: text, Start: start, End: l.pos}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	isFloat := false

	if l.source[l.pos] == '0' {
		switch l.peekByte(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			l.pos += 2
			for l.pos < len(l.source) && (isHexDigit(l.source[l.pos]) || l.source[l.pos] == '_') {
				l.pos++
			}
			return l.makeToken(TokenInteger, start)
		}
	}

	l.consumeDigits()
	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		isFloat = true
		l.pos++
		l.consumeDigits()
	}
	if l.pos < len(l.source) && (l.source[l.pos] == 'e' || l.source[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.source) && (l.source[l.pos] == '+' || l.source[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			isFloat = true
			l.consumeDigits()
		} else {
			l.pos = save
		}
	}
	if l.pos < len(l.source) && (l.source[l.pos] == 'j' || l.source[l.pos] == 'J') {
		l.pos++
		return l.makeToken(TokenImaginary, start)
	}
	if isFloat {
		return l.makeToken(TokenFloat, start)
	}
	return l.makeToken(TokenInteger, start)
}

func (l *Lexer) consumeDigits() {
	for l.pos < len(l.source) && (isDigit(l.source[l.pos]) || l.source[l.pos] == '_') {
		l.pos++
	}
}

// lexString scans a string literal starting at start with prefixLen
// prefix characters (r, b, f, u combinations). The returned token's
// literal is the full raw text including prefix and quotes; the parser
// strips them. An f prefix only emits the start marker and pushes an
// f-string frame.
func (l *Lexer) lexString(start, prefixLen int) Token {
	prefix := strings.ToLower(l.source[start : start+prefixLen])
	raw := strings.Contains(prefix, "r")
	isBytes := strings.Contains(prefix, "b")
	isFString := strings.Contains(prefix, "f")
	l.pos = start + prefixLen

	quote := l.source[l.pos]
	triple := l.peekByte(1) == quote && l.peekByte(2) == quote
	if triple {
		l.pos += 3
	} else {
		l.pos++
	}

	if isFString {
		l.fstack = append(l.fstack, &fstringFrame{quote: quote, triple: triple, raw: raw})
		return l.makeToken(TokenFStringStart, start)
	}

	if !l.scanStringBody(quote, triple) {
		return l.errorToken("unterminated string literal", start)
	}

	switch {
	case raw && isBytes:
		return l.makeToken(TokenRawBytes, start)
	case raw:
		return l.makeToken(TokenRawString, start)
	case isBytes:
		return l.makeToken(TokenBytes, start)
	default:
		return l.makeToken(TokenString, start)
	}
}

// scanStringBody consumes through the closing quote(s). Backslash
// always escapes the next character for termination purposes, raw
// strings included.
func (l *Lexer) scanStringBody(quote byte, triple bool) bool {
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		if c == '\\' && l.pos+1 < len(l.source) {
			l.pos += 2
			continue
		}
		if !triple && (c == '\n' || c == '\r') {
			return false
		}
		if c == quote {
			if !triple {
				l.pos++
				return true
			}
			if l.peekByte(1) == quote && l.peekByte(2) == quote {
				l.pos += 3
				return true
			}
		}
		l.pos++
	}
	return false
}

// lexFStringLiteral scans the literal portion of an f-string: middle
// text, the opening brace of a replacement field, or the end marker.
func (l *Lexer) lexFStringLiteral(frame *fstringFrame) Token {
	start := l.pos

	if l.pos >= len(l.source) {
		l.fstack = l.fstack[:len(l.fstack)-1]
		return l.errorToken("unterminated f-string literal", start)
	}

	if l.atClosingQuote(frame) {
		if frame.triple {
			l.pos += 3
		} else {
			l.pos++
		}
		l.fstack = l.fstack[:len(l.fstack)-1]
		return l.makeToken(TokenFStringEnd, start)
	}

	if l.source[l.pos] == '{' && l.peekByte(1) != '{' {
		l.pos++
		frame.state = fsExpr
		frame.braceDepth = 1
		return Token{Type: TokenLBrace, Literal: "{", Start: start, End: l.pos}
	}

	if l.source[l.pos] == '}' && l.peekByte(1) != '}' {
		l.pos++
		return l.errorToken("single '}' is not allowed in f-string literal", start)
	}

	var value strings.Builder
	for l.pos < len(l.source) {
		if l.atClosingQuote(frame) {
			break
		}
		c := l.source[l.pos]
		if c == '{' || c == '}' {
			if l.peekByte(1) == c {
				value.WriteByte(c)
				l.pos += 2
				continue
			}
			break
		}
		if c == '\\' && !frame.raw && l.pos+1 < len(l.source) {
			decoded, size := decodeOneEscape(l.source[l.pos:])
			value.WriteString(decoded)
			l.pos += size
			continue
		}
		if !frame.triple && (c == '\n' || c == '\r') {
			l.fstack = l.fstack[:len(l.fstack)-1]
			return l.errorToken("unterminated f-string literal", start)
		}
		value.WriteByte(c)
		l.pos++
	}

	return Token{Type: TokenFStringMiddle, Literal: value.String(), Start: start, End: l.pos}
}

func (l *Lexer) atClosingQuote(frame *fstringFrame) bool {
	if l.pos >= len(l.source) || l.source[l.pos] != frame.quote {
		return false
	}
	if !frame.triple {
		return true
	}
	return l.peekByte(1) == frame.quote && l.peekByte(2) == frame.quote
}

func (l *Lexer) lexOperator() Token {
	start := l.pos
	c := l.source[l.pos]
	two := l.peekByte(1)
	three := l.peekByte(2)

	emit := func(tt TokenType, width int) Token {
		l.pos += width
		return l.makeToken(tt, start)
	}

	switch c {
	case '+':
		if two == '=' {
			return emit(TokenPlusAssign, 2)
		}
		return emit(TokenPlus, 1)
	case '-':
		if two == '>' {
			return emit(TokenArrow, 2)
		}
		if two == '=' {
			return emit(TokenMinusAssign, 2)
		}
		return emit(TokenMinus, 1)
	case '*':
		if two == '*' {
			if three == '=' {
				return emit(TokenPowAssign, 3)
			}
			return emit(TokenPow, 2)
		}
		if two == '=' {
			return emit(TokenMulAssign, 2)
		}
		return emit(TokenMul, 1)
	case '/':
		if two == '/' {
			if three == '=' {
				return emit(TokenFloorDivAssign, 3)
			}
			return emit(TokenFloorDiv, 2)
		}
		if two == '=' {
			return emit(TokenDivAssign, 2)
		}
		return emit(TokenDiv, 1)
	case '%':
		if two == '=' {
			return emit(TokenModAssign, 2)
		}
		return emit(TokenMod, 1)
	case '@':
		if two == '=' {
			return emit(TokenMatMulAssign, 2)
		}
		return emit(TokenMatMul, 1)
	case '<':
		if two == '<' {
			if three == '=' {
				return emit(TokenShlAssign, 3)
			}
			return emit(TokenShl, 2)
		}
		if two == '=' {
			return emit(TokenLe, 2)
		}
		return emit(TokenLt, 1)
	case '>':
		if two == '>' {
			if three == '=' {
				return emit(TokenShrAssign, 3)
			}
			return emit(TokenShr, 2)
		}
		if two == '=' {
			return emit(TokenGe, 2)
		}
		return emit(TokenGt, 1)
	case '=':
		if two == '=' {
			return emit(TokenEq, 2)
		}
		return emit(TokenAssign, 1)
	case '!':
		if two == '=' {
			return emit(TokenNe, 2)
		}
		l.pos++
		return l.errorToken("unexpected character '!'", start)
	case '&':
		if two == '=' {
			return emit(TokenBitAndAssign, 2)
		}
		return emit(TokenBitAnd, 1)
	case '|':
		if two == '=' {
			return emit(TokenBitOrAssign, 2)
		}
		return emit(TokenBitOr, 1)
	case '^':
		if two == '=' {
			return emit(TokenBitXorAssign, 2)
		}
		return emit(TokenBitXor, 1)
	case '~':
		return emit(TokenBitNot, 1)
	case ':':
		if two == '=' {
			return emit(TokenWalrus, 2)
		}
		return emit(TokenColon, 1)
	case '(':
		return emit(TokenLParen, 1)
	case ')':
		return emit(TokenRParen, 1)
	case '[':
		return emit(TokenLBracket, 1)
	case ']':
		return emit(TokenRBracket, 1)
	case '{':
		if frame := l.topFString(); frame != nil && frame.state == fsExpr {
			frame.braceDepth++
		}
		return emit(TokenLBrace, 1)
	case '}':
		if frame := l.topFString(); frame != nil && frame.state == fsExpr {
			frame.braceDepth--
			if frame.braceDepth == 0 {
				frame.state = fsLiteral
			}
		}
		return emit(TokenRBrace, 1)
	case ',':
		return emit(TokenComma, 1)
	case '.':
		return emit(TokenDot, 1)
	case ';':
		return emit(TokenSemicolon, 1)
	}

	l.pos++
	return l.errorToken("unexpected character "+strconvQuoteByte(c), start)
}

func strconvQuoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
