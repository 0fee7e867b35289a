// Package parser provides lightweight header scanning for ReScript-style
// source files.
//
// The scanner is not a grammar parser. It is a small state machine that
// recognizes the two top-level declaration forms resort cares about:
//
//	let name = (params) : ret => {   (function binding)
//	type name =                      (type binding)
//
// Everything else in the file is opaque text. Headers are only recognized
// at the start of a line, which is the structural heuristic for "top-level";
// nested bindings inside a function body are indented and therefore skipped.
package parser

// Kind identifies the declaration form a header introduces.
type Kind string

const (
	// KindType is a type binding (`type name = ...`).
	KindType Kind = "type"
	// KindFunction is a function binding (`let name = (...) => {`).
	KindFunction Kind = "function"
)

// Header marks a recognized declaration header in the source text.
type Header struct {
	// Name is the bound identifier.
	Name string
	// Kind is the declaration form.
	Kind Kind
	// Start is the byte offset of the introducing keyword.
	Start int
	// BodyStart is the byte offset of the opening brace for function
	// headers, or the offset just past `=` for type headers.
	BodyStart int
}

// Scanner walks a document and collects declaration headers.
type Scanner struct {
	src string
}

// NewScanner creates a scanner over the given document text.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// ScanHeaders returns all recognized headers ordered by start offset.
// Ordering by offset defines "first occurrence" for deduplication later on.
func (s *Scanner) ScanHeaders() []Header {
	var headers []Header

	lineStart := true
	for i := 0; i < len(s.src); i++ {
		if lineStart {
			if h, ok := s.matchHeader(i); ok {
				headers = append(headers, h)
			}
		}
		lineStart = s.src[i] == '\n'
	}

	return headers
}

// matchHeader attempts to recognize a declaration header at pos.
func (s *Scanner) matchHeader(pos int) (Header, bool) {
	if s.hasKeyword(pos, "let") {
		return s.matchFunctionHeader(pos)
	}
	if s.hasKeyword(pos, "type") {
		return s.matchTypeHeader(pos)
	}
	return Header{}, false
}

// matchFunctionHeader recognizes `let name = (params) [: ret] => {`.
// The header may span multiple lines; whitespace between tokens is free-form.
func (s *Scanner) matchFunctionHeader(pos int) (Header, bool) {
	i := s.skipSpace(pos + len("let"))

	name, i, ok := s.scanIdent(i)
	if !ok {
		return Header{}, false
	}

	i = s.skipSpace(i)
	if !s.hasByte(i, '=') {
		return Header{}, false
	}
	i = s.skipSpace(i + 1)

	if !s.hasByte(i, '(') {
		return Header{}, false
	}
	i, ok = s.skipBalanced(i, '(', ')')
	if !ok {
		return Header{}, false
	}

	i = s.skipSpace(i)

	// Optional return type annotation: `: <type>` up to the arrow.
	if s.hasByte(i, ':') {
		i, ok = s.skipToArrow(i + 1)
		if !ok {
			return Header{}, false
		}
	}

	if !s.hasToken(i, "=>") {
		return Header{}, false
	}
	i = s.skipSpace(i + 2)

	if !s.hasByte(i, '{') {
		return Header{}, false
	}

	return Header{Name: name, Kind: KindFunction, Start: pos, BodyStart: i}, true
}

// matchTypeHeader recognizes `type name =`.
func (s *Scanner) matchTypeHeader(pos int) (Header, bool) {
	i := s.skipSpace(pos + len("type"))

	name, i, ok := s.scanIdent(i)
	if !ok {
		return Header{}, false
	}

	i = s.skipSpace(i)
	if !s.hasByte(i, '=') {
		return Header{}, false
	}

	return Header{Name: name, Kind: KindType, Start: pos, BodyStart: i + 1}, true
}

// hasKeyword reports whether the keyword appears at pos followed by a
// non-identifier byte (so `letter` does not match `let`).
func (s *Scanner) hasKeyword(pos int, kw string) bool {
	end := pos + len(kw)
	if end > len(s.src) || s.src[pos:end] != kw {
		return false
	}
	return end == len(s.src) || !isIdentByte(s.src[end])
}

// hasByte reports whether byte b appears at pos.
func (s *Scanner) hasByte(pos int, b byte) bool {
	return pos < len(s.src) && s.src[pos] == b
}

// hasToken reports whether the literal token appears at pos.
func (s *Scanner) hasToken(pos int, tok string) bool {
	return pos+len(tok) <= len(s.src) && s.src[pos:pos+len(tok)] == tok
}

// skipSpace advances past whitespace, including newlines.
func (s *Scanner) skipSpace(pos int) int {
	for pos < len(s.src) && isSpace(s.src[pos]) {
		pos++
	}
	return pos
}

// scanIdent consumes an identifier at pos. Identifiers follow the usual
// word-character rule: a leading letter or underscore, then letters,
// digits, underscores, or primes (ReScript allows `name'`).
func (s *Scanner) scanIdent(pos int) (string, int, bool) {
	if pos >= len(s.src) || !isIdentStart(s.src[pos]) {
		return "", pos, false
	}
	end := pos + 1
	for end < len(s.src) && isIdentByte(s.src[end]) {
		end++
	}
	return s.src[pos:end], end, true
}

// skipBalanced consumes a balanced delimiter pair starting at pos (which
// must hold the opening delimiter). Returns the offset past the closing
// delimiter. Fails if the text ends before the pair balances.
func (s *Scanner) skipBalanced(pos int, open, close byte) (int, bool) {
	depth := 0
	for i := pos; i < len(s.src); i++ {
		switch s.src[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(s.src), false
}

// skipToArrow consumes a return type annotation: everything up to the next
// `=>` on the same logical header. An `=` that is not part of an arrow ends
// the match (the binding was not a function header after all).
func (s *Scanner) skipToArrow(pos int) (int, bool) {
	for i := pos; i+1 < len(s.src); i++ {
		if s.src[i] == '=' {
			if s.src[i+1] == '>' {
				return i, true
			}
			return pos, false
		}
	}
	return pos, false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || b == '\'' || (b >= '0' && b <= '9')
}
