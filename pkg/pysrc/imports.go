package pysrc

import (
	"regexp"
	"strings"
)

// SpellingKind identifies how an import binding makes a symbol addressable
// at a call site.
type SpellingKind int

const (
	// SpellingDotted is the fully dotted path, available when the root
	// package is imported with a plain "import" statement.
	SpellingDotted SpellingKind = iota
	// SpellingBare is the final symbol name, bound by a from-import of the
	// symbol itself.
	SpellingBare
	// SpellingPrefixed is an intermediate module name followed by the rest
	// of the dotted path, bound by a from-import of that module.
	SpellingPrefixed
)

func (k SpellingKind) String() string {
	return []string{"dotted", "bare", "prefixed"}[k]
}

// Spelling is one way a dotted symbol can appear at a call site in a
// particular file.
type Spelling struct {
	Kind       SpellingKind
	Text       string
	ImportLine int
}

// AliasedImport records an import statement the matcher refuses to resolve.
// Call sites reached through an alias are left unchanged.
type AliasedImport struct {
	Line int
	Stmt string
}

type fromBinding struct {
	module string
	name   string
	line   int
	multi  bool // part of a multi-name import list
}

// Imports holds the recognized import bindings of a single source file.
//
// Only the fixed spellings below are recognized:
//
//	import a.b.c
//	import a, b.c
//	from a.b import C
//	from a.b import C, D
//
// Anything with an "as" clause is recorded as aliased and never resolved.
type Imports struct {
	modules map[string]int         // plain-imported dotted module -> line
	from    map[string]fromBinding // local name -> origin
	aliased []AliasedImport
}

var (
	importLineRe = regexp.MustCompile(`^\s*import\s+(.+?)\s*$`)
	fromLineRe   = regexp.MustCompile(`^\s*from\s+([A-Za-z_][\w.]*)\s+import\s+(.+?)\s*$`)
	dottedNameRe = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)*$`)
)

// ScanImports extracts the recognized import bindings from src.
func ScanImports(src string) *Imports {
	im := &Imports{
		modules: make(map[string]int),
		from:    make(map[string]fromBinding),
	}

	for lineno, line := range strings.Split(src, "\n") {
		// Strip trailing comments before matching.
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimRight(line, " \t\r")

		if m := fromLineRe.FindStringSubmatch(line); m != nil {
			im.scanFromImport(lineno+1, line, m[1], m[2])
			continue
		}
		if m := importLineRe.FindStringSubmatch(line); m != nil {
			im.scanPlainImport(lineno+1, line, m[1])
		}
	}

	return im
}

func (im *Imports) scanPlainImport(line int, stmt, names string) {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(name, " as ") || !dottedNameRe.MatchString(name) {
			im.aliased = append(im.aliased, AliasedImport{Line: line, Stmt: strings.TrimSpace(stmt)})
			continue
		}
		im.modules[name] = line
	}
}

func (im *Imports) scanFromImport(line int, stmt, module, names string) {
	// Single-line parenthesized lists are recognized. A list opening a
	// continuation, "import (" alone or an unclosed paren, cannot be
	// resolved from one line and is recorded as unresolved.
	if strings.HasPrefix(names, "(") && !strings.HasSuffix(names, ")") {
		im.aliased = append(im.aliased, AliasedImport{Line: line, Stmt: strings.TrimSpace(stmt)})
		return
	}
	names = strings.TrimPrefix(names, "(")
	names = strings.TrimSuffix(names, ")")
	if strings.TrimSpace(names) == "" {
		im.aliased = append(im.aliased, AliasedImport{Line: line, Stmt: strings.TrimSpace(stmt)})
		return
	}

	parts := strings.Split(names, ",")
	multi := len(parts) > 1
	for _, name := range parts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(name, " as ") || name == "*" || !dottedNameRe.MatchString(name) || strings.Contains(name, ".") {
			im.aliased = append(im.aliased, AliasedImport{Line: line, Stmt: strings.TrimSpace(stmt)})
			continue
		}
		im.from[name] = fromBinding{module: module, name: name, line: line, multi: multi}
	}
}

// Merge folds the bindings of other into im. Existing bindings win, so a
// later cell never shadows an earlier one when merging notebook cells.
func (im *Imports) Merge(other *Imports) {
	for module, line := range other.modules {
		if _, ok := im.modules[module]; !ok {
			im.modules[module] = line
		}
	}
	for local, binding := range other.from {
		if _, ok := im.from[local]; !ok {
			im.from[local] = binding
		}
	}
	im.aliased = append(im.aliased, other.aliased...)
}

// Aliased returns the import statements that were recorded but not resolved.
func (im *Imports) Aliased() []AliasedImport {
	return im.aliased
}

// Spellings returns every recognized spelling under which the fully dotted
// symbol is addressable in the scanned file.
func (im *Imports) Spellings(symbol string) []Spelling {
	spellings := make([]Spelling, 0, 2)

	root := symbol
	if idx := strings.IndexByte(symbol, '.'); idx >= 0 {
		root = symbol[:idx]
	}

	// A plain import of the root package (or any of its submodules) makes
	// the full dotted path spellable.
	for module, line := range im.modules {
		if module == root || strings.HasPrefix(module, root+".") {
			spellings = append(spellings, Spelling{Kind: SpellingDotted, Text: symbol, ImportLine: line})
			break
		}
	}

	for local, binding := range im.from {
		bound := binding.module + "." + binding.name
		switch {
		case bound == symbol:
			spellings = append(spellings, Spelling{Kind: SpellingBare, Text: local, ImportLine: binding.line})
		case strings.HasPrefix(symbol, bound+"."):
			spellings = append(spellings, Spelling{
				Kind:       SpellingPrefixed,
				Text:       local + symbol[len(bound):],
				ImportLine: binding.line,
			})
		}
	}

	return spellings
}

// FromBinding reports the origin of a name bound by a recognized
// from-import, and whether the import statement listed other names too.
func (im *Imports) FromBinding(local string) (module string, multi bool, line int, ok bool) {
	b, found := im.from[local]
	if !found {
		return "", false, 0, false
	}
	return b.module, b.multi, b.line, true
}
