package pipeline

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// checkModule parses module as an ES module and returns one message per
// syntax error. A backtick in the shader text ends the template literal
// early, which is where this shows up.
func checkModule(path, module string) []string {
	result := api.Transform(module, api.TransformOptions{
		Loader:     api.LoaderJS,
		Format:     api.FormatESModule,
		Sourcefile: path,
		LogLevel:   api.LogLevelSilent,
	})

	msgs := make([]string, 0, len(result.Errors))
	for _, m := range result.Errors {
		if m.Location == nil {
			msgs = append(msgs, "output check: "+m.Text)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("output check: %s:%d:%d: %s",
			m.Location.File, m.Location.Line, m.Location.Column, m.Text))
	}
	return msgs
}
