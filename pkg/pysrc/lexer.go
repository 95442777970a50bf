package pysrc

// codeMask returns one boolean per byte of src, true for bytes that are
// executable code and false for bytes inside string literals or comments.
// It understands single and triple quoted strings, escape sequences, and
// hash comments. String prefixes (r, b, f and combinations) need no special
// handling because the prefix letters lex as ordinary identifier bytes.
func codeMask(src string) []bool {
	mask := make([]bool, len(src))

	const (
		stateCode = iota
		stateComment
		stateString
	)

	state := stateCode
	var quote byte
	triple := false

	for i := 0; i < len(src); i++ {
		b := src[i]

		switch state {
		case stateCode:
			switch b {
			case '#':
				state = stateComment
			case '\'', '"':
				state = stateString
				quote = b
				if i+2 < len(src) && src[i+1] == b && src[i+2] == b {
					triple = true
					mask[i+1] = false
					mask[i+2] = false
					i += 2
				} else {
					triple = false
				}
			default:
				mask[i] = true
			}
		case stateComment:
			if b == '\n' {
				state = stateCode
				mask[i] = true
			}
		case stateString:
			switch {
			case b == '\\' && i+1 < len(src):
				i++ // skip escaped byte
			case b == quote && !triple:
				state = stateCode
			case b == quote && triple && i+2 < len(src) && src[i+1] == quote && src[i+2] == quote:
				i += 2
				state = stateCode
			case b == '\n' && !triple:
				// Unterminated single-quoted string; resynchronize.
				state = stateCode
				mask[i] = true
			}
		}
	}

	return mask
}

// isIdentByte reports whether b can appear inside a Python identifier.
func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isIdentStart reports whether b can start a Python identifier.
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// lineAt returns the 1-based line number containing byte offset off.
func lineAt(src string, off int) int {
	if off > len(src) {
		off = len(src)
	}
	line := 1
	for i := 0; i < off; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}

// lineText returns the text of the line containing byte offset off,
// without the trailing newline.
func lineText(src string, off int) string {
	if off > len(src) {
		off = len(src)
	}
	start := off
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := off
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return src[start:end]
}
