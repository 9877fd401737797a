package generator

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
)

// CraftImportPath is the import path widget types embed craft types from.
const CraftImportPath = "github.com/pthm/craft"

// GeneratedSuffix marks files written by the generator.
const GeneratedSuffix = "_craft.go"

// ErrNoModule is returned when a package is not inside a Go module.
var ErrNoModule = errors.New("generator: no go.mod found")

// embeddable lists the craft types whose embedding makes a widget.
var embeddable = map[string]bool{
	"Component":           true,
	"View":                true,
	"ViewController":      true,
	"RootViewController":  true,
	"ModalViewController": true,
}

// Options configures the generator.
type Options struct {
	DryRun bool

	// FullPath qualifies names with the full import path instead of the
	// module-relative one.
	FullPath bool

	// Out receives progress messages. Defaults to os.Stdout.
	Out io.Writer
}

// Generator writes QualifiedName methods for craft widgets.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate generates code for the given package patterns.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		root, recursive := strings.CutSuffix(pattern, "/...")
		if !recursive {
			packages = append(packages, pattern)
			continue
		}
		if root == "" {
			root = "."
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			base := d.Name()
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") ||
				base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}
			if hasGoFiles(path) {
				packages = append(packages, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packages, nil
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && isSourceFile(entry.Name()) {
			return true
		}
	}
	return false
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, GeneratedSuffix)
}

// generatePackage generates code for a single package.
func (g *Generator) generatePackage(pkgPath string) error {
	pkgs, err := parser.ParseDir(g.fset, pkgPath, func(info os.FileInfo) bool {
		return isSourceFile(info.Name())
	}, 0)
	if err != nil {
		return err
	}

	for pkgName, pkg := range pkgs {
		widgets := g.findWidgets(pkg)
		if len(widgets) == 0 {
			continue
		}

		qualifier, err := g.qualifier(pkgPath, pkgName)
		if err != nil {
			return err
		}

		for file, list := range groupByFile(widgets) {
			for _, w := range list {
				w.QualifiedName = qualifier + "." + w.TypeName
			}
			if err := g.writeFile(pkgPath, pkgName, file, list); err != nil {
				return err
			}
		}
	}

	return nil
}

// cleanPackage removes generated files from a package.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), GeneratedSuffix) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		fmt.Fprintf(g.opts.Out, "removing %s\n", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}

	return nil
}

// WidgetInfo describes a type that embeds a craft type.
type WidgetInfo struct {
	SourceFile    string
	TypeName      string // e.g. "TagList"
	Embeds        string // e.g. "View"
	QualifiedName string // e.g. "views.TagList"
}

// findWidgets finds all widget types in a package that do not declare
// QualifiedName themselves.
func (g *Generator) findWidgets(pkg *ast.Package) []*WidgetInfo {
	declared := make(map[string]bool)
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Name.Name != "QualifiedName" {
				continue
			}
			if name := receiverType(fn.Recv.List[0].Type); name != "" {
				declared[name] = true
			}
		}
	}

	var widgets []*WidgetInfo
	for filename, file := range pkg.Files {
		alias := craftAlias(file)
		if alias == "" {
			continue
		}

		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok || typeSpec.TypeParams != nil {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				embeds := findEmbeddedCraftType(structType, alias)
				if embeds == "" || declared[typeSpec.Name.Name] {
					continue
				}

				widgets = append(widgets, &WidgetInfo{
					SourceFile: filename,
					TypeName:   typeSpec.Name.Name,
					Embeds:     embeds,
				})
			}
		}
	}

	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].TypeName < widgets[j].TypeName
	})
	return widgets
}

// craftAlias returns the name the file imports craft under, or "".
func craftAlias(file *ast.File) string {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != CraftImportPath {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				return ""
			}
			return imp.Name.Name
		}
		return "craft"
	}
	return ""
}

// findEmbeddedCraftType checks if a struct embeds one of the craft widget
// types, by pointer or by value. Returns the embedded type name.
func findEmbeddedCraftType(structType *ast.StructType, alias string) string {
	for _, field := range structType.Fields.List {
		if len(field.Names) != 0 {
			continue
		}

		typ := field.Type
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		sel, ok := typ.(*ast.SelectorExpr)
		if !ok {
			continue
		}
		if ident, ok := sel.X.(*ast.Ident); ok && ident.Name == alias && embeddable[sel.Sel.Name] {
			return sel.Sel.Name
		}
	}
	return ""
}

func receiverType(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

// qualifier returns the package part of qualified names: the import path
// relative to the module root, the package name for the module root
// itself, or the full import path with FullPath.
func (g *Generator) qualifier(pkgPath, pkgName string) (string, error) {
	dir, err := filepath.Abs(pkgPath)
	if err != nil {
		return "", err
	}
	modDir, modPath, err := findModule(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(modDir, dir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)

	if g.opts.FullPath {
		if rel == "." {
			return modPath, nil
		}
		return modPath + "/" + rel, nil
	}
	if rel == "." {
		return pkgName, nil
	}
	return rel, nil
}

// findModule walks up from dir to the nearest go.mod and returns its
// directory and module path.
func findModule(dir string) (string, string, error) {
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", "", fmt.Errorf("generator: %s/go.mod has no module directive", dir)
			}
			return dir, modPath, nil
		}
		if !os.IsNotExist(err) {
			return "", "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", ErrNoModule
		}
		dir = parent
	}
}

func groupByFile(widgets []*WidgetInfo) map[string][]*WidgetInfo {
	out := make(map[string][]*WidgetInfo)
	for _, w := range widgets {
		out[w.SourceFile] = append(out[w.SourceFile], w)
	}
	return out
}
