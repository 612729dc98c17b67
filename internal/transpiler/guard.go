package transpiler

import "strings"

const (
	pragmaOnce  = "#pragma once"
	guardSuffix = "\n\n#endif // end of include guard"
)

var identifierReplacer = strings.NewReplacer("_", "_", ".", "_", "/", "_")

// Identifier maps path to a binding name: the first occurrence of rootDir is
// removed and every "_", "." and "/" becomes "_".
func Identifier(path, rootDir string) string {
	if rootDir != "" {
		path = strings.Replace(path, rootDir, "", 1)
	}
	return identifierReplacer.Replace(path)
}

// HasPragmaOnce reports whether src carries the guard marker.
func HasPragmaOnce(src string) bool {
	return strings.Contains(src, pragmaOnce)
}

// GuardName derives the guard macro for sourcePath.
func GuardName(sourcePath, rootDir string) string {
	return Identifier(sourcePath, rootDir)
}

// WrapGuard removes every "#pragma once" from body and wraps it in an
// #ifndef/#define/#endif guard named guard.
func WrapGuard(body, guard string) string {
	var b strings.Builder
	b.WriteString("#ifndef ")
	b.WriteString(guard)
	b.WriteString("\n#define ")
	b.WriteString(guard)
	b.WriteString("\n")
	b.WriteString(strings.ReplaceAll(body, pragmaOnce, ""))
	b.WriteString("\n")
	b.WriteString(guardSuffix)
	return b.String()
}
