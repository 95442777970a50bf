package pysrc

import "strings"

// FindMethodCalls locates call sites of the form ".method(" regardless of
// the receiver expression. The receiver's type is unknown to the matcher,
// so callers should treat these matches as heuristic.
func FindMethodCalls(src, method string) []Call {
	mask := codeMask(src)
	calls := make([]Call, 0)
	needle := "." + method

	for start := 0; ; {
		idx := strings.Index(src[start:], needle)
		if idx < 0 {
			break
		}
		idx += start
		start = idx + 1

		nameStart := idx + 1
		if !maskedRange(mask, idx, nameStart+len(method)) {
			continue
		}
		after := nameStart + len(method)
		if after < len(src) && (isIdentByte(src[after]) || src[after] == '.') {
			continue
		}

		open := skipSpaces(src, mask, after)
		if open >= len(src) || src[open] != '(' || !mask[open] {
			continue
		}
		closeIdx := matchParen(src, mask, open)
		if closeIdx < 0 {
			continue
		}

		calls = append(calls, Call{
			Spelling:   method,
			NameStart:  nameStart,
			OpenParen:  open,
			CloseParen: closeIdx,
		})
		start = closeIdx
	}

	return calls
}

// CallHasArgs reports whether the call's argument list contains anything
// besides whitespace and comments.
func CallHasArgs(src string, call Call) bool {
	mask := codeMask(src)
	for i := call.OpenParen + 1; i < call.CloseParen; i++ {
		if !mask[i] {
			continue
		}
		switch src[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return true
		}
	}
	return false
}
