package pysrc

import (
	"sort"
	"strings"
)

// Call is one recognized call site: a spelling immediately followed by a
// parenthesized argument list.
type Call struct {
	Spelling   string
	NameStart  int // byte offset of the first byte of the spelling
	OpenParen  int // byte offset of '('
	CloseParen int // byte offset of the matching ')'
}

// Line returns the 1-based line number of the call site in src.
func (c Call) Line(src string) int {
	return lineAt(src, c.NameStart)
}

// FindCalls locates every call site in src where spelling is invoked
// directly. Matches inside strings and comments are ignored, as are
// matches that are part of a longer identifier or attribute chain.
// Calls whose argument list never closes are skipped.
func FindCalls(src, spelling string) []Call {
	mask := codeMask(src)
	calls := make([]Call, 0)

	for start := 0; ; {
		idx := strings.Index(src[start:], spelling)
		if idx < 0 {
			break
		}
		idx += start
		start = idx + 1

		if !maskedRange(mask, idx, idx+len(spelling)) {
			continue
		}
		if !boundaryBefore(src, idx) || !boundaryAfter(src, idx+len(spelling)) {
			continue
		}

		open := skipSpaces(src, mask, idx+len(spelling))
		if open >= len(src) || src[open] != '(' || !mask[open] {
			continue
		}
		closeIdx := matchParen(src, mask, open)
		if closeIdx < 0 {
			continue
		}

		calls = append(calls, Call{
			Spelling:   spelling,
			NameStart:  idx,
			OpenParen:  open,
			CloseParen: closeIdx,
		})
		start = closeIdx
	}

	return calls
}

// KeywordArg is one keyword argument at the top level of a call's
// argument list.
type KeywordArg struct {
	Name   string
	Offset int // byte offset of the first byte of the name
}

// KeywordArgs returns the top-level keyword arguments of the call,
// in source order. Keywords nested inside inner calls or literals are
// not reported.
func KeywordArgs(src string, call Call) []KeywordArg {
	mask := codeMask(src)
	args := make([]KeywordArg, 0)

	depth := 1
	expectArg := true
	for i := call.OpenParen + 1; i < call.CloseParen; i++ {
		if !mask[i] {
			continue
		}
		b := src[i]
		switch b {
		case '(', '[', '{':
			depth++
			expectArg = false
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 1 {
				expectArg = true
			}
		case ' ', '\t', '\n', '\r':
			// whitespace never ends an argument position
		default:
			if depth == 1 && expectArg && isIdentStart(b) {
				end := i + 1
				for end < call.CloseParen && isIdentByte(src[end]) {
					end++
				}
				eq := skipSpaces(src, mask, end)
				if eq < call.CloseParen && src[eq] == '=' && mask[eq] &&
					(eq+1 >= len(src) || src[eq+1] != '=') {
					args = append(args, KeywordArg{Name: src[i:end], Offset: i})
				}
				i = end - 1
			}
			expectArg = false
		}
	}

	return args
}

// KeywordRename records one applied keyword rename.
type KeywordRename struct {
	Old    string
	New    string
	Offset int // offset of the keyword in the original source
}

// RenameKeywordArgs rewrites the named keyword arguments of a call.
// The renames map is keyed by old keyword name. Renames are applied
// back-to-front so recorded offsets refer to the original source.
func RenameKeywordArgs(src string, call Call, renames map[string]string) (string, []KeywordRename) {
	args := KeywordArgs(src, call)
	applied := make([]KeywordRename, 0)

	for _, arg := range args {
		if newName, ok := renames[arg.Name]; ok && newName != arg.Name {
			applied = append(applied, KeywordRename{Old: arg.Name, New: newName, Offset: arg.Offset})
		}
	}
	if len(applied) == 0 {
		return src, nil
	}

	sort.Slice(applied, func(i, j int) bool { return applied[i].Offset > applied[j].Offset })
	for _, r := range applied {
		src = src[:r.Offset] + r.New + src[r.Offset+len(r.Old):]
	}
	sort.Slice(applied, func(i, j int) bool { return applied[i].Offset < applied[j].Offset })

	return src, applied
}

// Reference records one rewritten reference.
type Reference struct {
	Offset int // offset in the original source
}

// ReplaceReferences rewrites whole-token occurrences of spelling with
// replacement, skipping strings, comments, and occurrences embedded in a
// longer identifier or attribute chain. It returns the new source and the
// original offsets of the rewritten references.
func ReplaceReferences(src, spelling, replacement string) (string, []Reference) {
	mask := codeMask(src)
	offsets := make([]int, 0)

	for start := 0; ; {
		idx := strings.Index(src[start:], spelling)
		if idx < 0 {
			break
		}
		idx += start
		start = idx + 1

		if !maskedRange(mask, idx, idx+len(spelling)) {
			continue
		}
		if !boundaryBefore(src, idx) {
			continue
		}
		after := idx + len(spelling)
		if after < len(src) && (isIdentByte(src[after]) || src[after] == '.') {
			continue
		}
		offsets = append(offsets, idx)
		start = after
	}
	if len(offsets) == 0 {
		return src, nil
	}

	refs := make([]Reference, len(offsets))
	for i, off := range offsets {
		refs[i] = Reference{Offset: off}
	}
	for i := len(offsets) - 1; i >= 0; i-- {
		off := offsets[i]
		src = src[:off] + replacement + src[off+len(spelling):]
	}

	return src, refs
}

// RewriteFromImport rewrites a single-name from-import statement on the
// given 1-based line, replacing both the module and the imported name.
// It returns the new source and whether the line was rewritten.
func RewriteFromImport(src string, line int, oldModule, oldName, newModule, newName string) (string, bool) {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return src, false
	}

	m := fromLineRe.FindStringSubmatch(strings.TrimRight(lines[line-1], " \t\r"))
	if m == nil || m[1] != oldModule || strings.TrimSpace(m[2]) != oldName {
		return src, false
	}

	rewritten := strings.Replace(lines[line-1], oldModule, newModule, 1)
	if idx := strings.LastIndex(rewritten, " import "); idx >= 0 {
		head, tail := rewritten[:idx+len(" import ")], rewritten[idx+len(" import "):]
		rewritten = head + strings.Replace(tail, oldName, newName, 1)
	}
	lines[line-1] = rewritten

	return strings.Join(lines, "\n"), true
}

// boundaryBefore reports whether the byte before offset idx cannot extend
// an identifier or attribute chain leftward.
func boundaryBefore(src string, idx int) bool {
	if idx == 0 {
		return true
	}
	b := src[idx-1]
	return !isIdentByte(b) && b != '.'
}

// boundaryAfter reports whether the byte at offset idx cannot extend an
// identifier or attribute chain rightward.
func boundaryAfter(src string, idx int) bool {
	if idx >= len(src) {
		return true
	}
	b := src[idx]
	return !isIdentByte(b) && b != '.'
}

// skipSpaces advances past spaces and tabs in code, returning the offset
// of the next significant byte.
func skipSpaces(src string, mask []bool, i int) int {
	for i < len(src) && mask[i] && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

// matchParen returns the offset of the ')' matching the '(' at open,
// or -1 if the list never closes.
func matchParen(src string, mask []bool, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		if !mask[i] {
			continue
		}
		switch src[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// maskedRange reports whether every byte in [from, to) is code.
func maskedRange(mask []bool, from, to int) bool {
	if to > len(mask) {
		return false
	}
	for i := from; i < to; i++ {
		if !mask[i] {
			return false
		}
	}
	return true
}
