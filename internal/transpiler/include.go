package transpiler

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// DirectiveKind selects the search scope of an include directive.
type DirectiveKind int

const (
	// DirectiveLocal is #include "name", searched in the including file's directory.
	DirectiveLocal DirectiveKind = iota
	// DirectiveAbsolute is #include <name>, searched in the include directories.
	DirectiveAbsolute
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveLocal:
		return "local"
	case DirectiveAbsolute:
		return "absolute"
	default:
		return "unknown"
	}
}

var directiveRegex = map[DirectiveKind]*regexp.Regexp{
	DirectiveLocal:    regexp.MustCompile(`(?m)^[ \t]*#(?:pragma +)?include +"([\w./]+)"`),
	DirectiveAbsolute: regexp.MustCompile(`(?m)^[ \t]*#(?:pragma +)?include +<([\w./]+)>`),
}

// Directive is one include occurrence in a source text.
type Directive struct {
	Kind DirectiveKind
	// Raw is the matched text, leading indentation included.
	Raw string
	// Target is the name between the quotes or angle brackets.
	Target string
	// Start and End are byte offsets of Raw.
	Start, End int
}

// ScanDirectives returns the directives of the given kind in text order.
func ScanDirectives(text string, kind DirectiveKind) []Directive {
	matches := directiveRegex[kind].FindAllStringSubmatchIndex(text, -1)
	directives := make([]Directive, 0, len(matches))
	for _, m := range matches {
		directives = append(directives, Directive{
			Kind:   kind,
			Raw:    text[m[0]:m[1]],
			Target: text[m[2]:m[3]],
			Start:  m[0],
			End:    m[1],
		})
	}
	return directives
}

// Include is a directive that resolved to a file.
type Include struct {
	Directive
	// Path is the resolved file.
	Path string
	// Identifier is both the import binding and the interpolated expression.
	Identifier string
	// ImportPath is relative to the including file's directory and starts with "." .
	ImportPath string
}

// ImportStatement is the module import that binds the included module.
func (inc Include) ImportStatement() string {
	return fmt.Sprintf("import %s from '%s.js'", inc.Identifier, inc.ImportPath)
}

// includeProcessor carries the per-file import list and error list.
type includeProcessor struct {
	opts       Options
	sourceDir  string
	extensions []string
	imports    []string
	includes   []Include
	errors     []string
}

func newIncludeProcessor(sourcePath string, opts Options) *includeProcessor {
	return &includeProcessor{
		opts:       opts,
		sourceDir:  filepath.Dir(sourcePath),
		extensions: SearchExtensions(opts),
	}
}

// process replaces every directive of kind in text, searching dirs.
func (p *includeProcessor) process(text string, kind DirectiveKind, dirs []string) string {
	directives := ScanDirectives(text, kind)
	if len(directives) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, d := range directives {
		b.WriteString(text[last:d.Start])
		b.WriteString(p.replace(d, dirs))
		last = d.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// replace returns the substitution for one directive, recording the import
// on success and the error on failure. The error text doubles as the
// substitution so the problem is visible in the emitted module.
func (p *includeProcessor) replace(d Directive, dirs []string) string {
	res, err := Resolve(d.Target, dirs, p.extensions)
	if err != nil {
		var attempts []string
		var nf *NotFoundError
		if errors.As(err, &nf) {
			attempts = nf.Attempts
		}
		msg := fmt.Sprintf(`Could not resolve "%s" - current directory %s, attempts: %s`,
			d.Raw, p.sourceDir, strings.Join(attempts, ","))
		p.errors = append(p.errors, msg)
		return msg
	}

	inc := Include{
		Directive:  d,
		Path:       res.Path,
		Identifier: Identifier(res.Path, p.opts.RootDir),
		ImportPath: relativeImport(p.sourceDir, res.Path),
	}
	p.includes = append(p.includes, inc)

	// dedup is on the statement text, not on the resolved file
	if stmt := inc.ImportStatement(); !slices.Contains(p.imports, stmt) {
		p.imports = append(p.imports, stmt)
	}

	return "${" + inc.Identifier + "}"
}

// relativeImport returns target relative to fromDir in import form. Both
// are made absolute first so a relative source path can be mixed with
// absolute include directories.
func relativeImport(fromDir, target string) string {
	if abs, err := filepath.Abs(fromDir); err == nil {
		fromDir = abs
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		rel = target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
