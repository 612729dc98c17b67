package transpiler

import "strings"

const (
	modulePrefix = "export default /* glsl */ `\n"
	moduleSuffix = "`;"
)

// AssembleModule builds the emitted module: the import block, a blank line
// when there are imports, and body exported as a template literal. Every
// ${identifier} left in body by include substitution is evaluated when the
// module loads.
func AssembleModule(imports []string, body string) string {
	var b strings.Builder
	if len(imports) > 0 {
		b.WriteString(strings.Join(imports, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(modulePrefix)
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(moduleSuffix)
	return b.String()
}
