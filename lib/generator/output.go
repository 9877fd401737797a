package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
)

// fileData is the template input for one generated file.
type fileData struct {
	Package string
	Source  string
	Widgets []*WidgetInfo
}

// writeFile generates the QualifiedName methods for the widgets declared in
// sourceFile.
func (g *Generator) writeFile(pkgPath, pkgName, sourceFile string, widgets []*WidgetInfo) error {
	data := fileData{
		Package: pkgName,
		Source:  filepath.Base(sourceFile),
		Widgets: widgets,
	}

	var buf bytes.Buffer
	if err := craftTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w\n%s", err, buf.String())
	}

	base := strings.TrimSuffix(filepath.Base(sourceFile), ".go")
	outPath := filepath.Join(pkgPath, base+GeneratedSuffix)

	for _, w := range widgets {
		fmt.Fprintf(g.opts.Out, "%s: %s embeds craft.%s\n", outPath, w.QualifiedName, w.Embeds)
	}
	if g.opts.DryRun {
		fmt.Fprintf(g.opts.Out, "would write %s\n", outPath)
		return nil
	}

	fmt.Fprintf(g.opts.Out, "writing %s\n", outPath)
	return os.WriteFile(outPath, formatted, 0o644)
}

// receiverName returns the lower-cased first letter of a type name.
func receiverName(typeName string) string {
	if typeName == "" {
		return "w"
	}
	return string(unicode.ToLower([]rune(typeName)[0]))
}

var craftTemplate = template.Must(template.New("craft").Funcs(template.FuncMap{
	"receiver": receiverName,
}).Parse(`// Code generated by craft generate. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}
{{range .Widgets}}
// QualifiedName returns the registry name of {{.TypeName}}.
func ({{receiver .TypeName}} *{{.TypeName}}) QualifiedName() string {
	return {{printf "%q" .QualifiedName}}
}
{{end}}`))
