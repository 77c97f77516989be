package codegen

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/constant"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hengadev/errsx"
)

// Directive marks a constant whose value is to be sealed.
const Directive = "//obfx:literal"

// DefaultOutputSuffix is appended to the source name of generated files.
const DefaultOutputSuffix = "_obfx"

// DiscoveryConfig holds configuration for literal discovery
type DiscoveryConfig struct {
	SkipPackages []string
	OutputSuffix string
	PackageName  string // used for manifests without a package field
}

// DiscoverLiterals finds the literal manifests and the //obfx:literal
// directives of the package in packagePath. Sources without literals are
// not returned.
func DiscoverLiterals(packagePath string, config *DiscoveryConfig) ([]SourceInfo, error) {
	if config == nil {
		config = &DiscoveryConfig{}
	}
	suffix := config.OutputSuffix
	if suffix == "" {
		suffix = DefaultOutputSuffix
	}

	for _, skip := range config.SkipPackages {
		if filepath.Clean(skip) == filepath.Clean(packagePath) {
			return nil, nil
		}
	}

	entries, err := os.ReadDir(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory: %w", err)
	}

	var (
		sources  []SourceInfo
		goFiles  []SourceInfo
		manifest []SourceInfo
		pkgName  string
		errs     errsx.Map
	)

	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(packagePath, name)

		switch {
		case strings.HasSuffix(name, ManifestSuffix):
			info, err := LoadManifest(path)
			if err != nil {
				errs.Set(name, err)
				continue
			}
			manifest = append(manifest, info)

		case strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasSuffix(name, suffix+".go"):
			info, err := parseSource(fset, path)
			if err != nil {
				errs.Set(name, err)
				continue
			}
			if pkgName == "" && !info.Guarded {
				pkgName = info.PackageName
			}
			if len(info.Literals) > 0 {
				goFiles = append(goFiles, info)
			}
		}
	}

	if !errs.IsEmpty() {
		return nil, errs.AsError()
	}

	if pkgName == "" && len(goFiles) > 0 {
		pkgName = goFiles[0].PackageName
	}
	if pkgName == "" {
		pkgName = config.PackageName
	}
	if pkgName == "" || pkgName == "auto" {
		abs, err := filepath.Abs(packagePath)
		if err != nil {
			return nil, err
		}
		pkgName = sanitizePackageName(filepath.Base(abs))
	}

	for _, m := range manifest {
		if len(m.Literals) == 0 {
			continue
		}
		if m.PackageName == "" {
			m.PackageName = pkgName
		}
		sources = append(sources, m)
	}
	sources = append(sources, goFiles...)

	slices.SortFunc(sources, func(a, b SourceInfo) int {
		return strings.Compare(a.SourceFile, b.SourceFile)
	})
	return sources, nil
}

// ParseSource reads the //obfx:literal directives of a single Go file.
func ParseSource(path string) (SourceInfo, error) {
	return parseSource(token.NewFileSet(), path)
}

func parseSource(fset *token.FileSet, path string) (SourceInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SourceInfo{}, err
	}

	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		return SourceInfo{}, err
	}

	info := SourceInfo{
		PackageName: file.Name.Name,
		SourceFile:  filepath.Base(path),
		Guarded:     hasBuildConstraint(file),
		Content:     content,
	}

	var errs errsx.Map
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}

		groupOpts, groupMarked := directiveOptions(gen.Doc)
		for _, s := range gen.Specs {
			spec := s.(*ast.ValueSpec)

			opts, marked := directiveOptions(spec.Doc)
			if !marked {
				opts, marked = groupOpts, groupMarked
			}
			if !marked {
				continue
			}

			lits, err := specLiterals(fset, path, spec, opts)
			if err != nil {
				errs.Set(fset.Position(spec.Pos()).String(), err)
				continue
			}
			info.Literals = append(info.Literals, lits...)
		}
	}

	if !errs.IsEmpty() {
		return SourceInfo{}, errs.AsError()
	}
	return info, nil
}

// hasBuildConstraint reports whether a //go:build line precedes the package
// clause.
func hasBuildConstraint(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			break
		}
		for _, c := range cg.List {
			if constraint.IsGoBuild(c.Text) {
				return true
			}
		}
	}
	return false
}

type directiveOpts struct {
	level   string
	profile string
	err     error
}

func directiveOptions(doc *ast.CommentGroup) (directiveOpts, bool) {
	if doc == nil {
		return directiveOpts{}, false
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}

		var opts directiveOpts
		for _, field := range strings.Fields(rest) {
			key, value, found := strings.Cut(field, "=")
			switch {
			case !found:
				opts.err = fmt.Errorf("malformed directive option %q", field)
			case key == "level":
				opts.level = value
			case key == "profile":
				opts.profile = value
			default:
				opts.err = fmt.Errorf("unknown directive option %q", key)
			}
		}
		return opts, true
	}
	return directiveOpts{}, false
}

func specLiterals(fset *token.FileSet, path string, spec *ast.ValueSpec, opts directiveOpts) ([]Literal, error) {
	if opts.err != nil {
		return nil, opts.err
	}
	if len(spec.Values) != len(spec.Names) {
		return nil, fmt.Errorf("every marked constant needs an explicit value")
	}

	typeName := ""
	if spec.Type != nil {
		ident, ok := spec.Type.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported constant type %s", getTypeString(spec.Type))
		}
		typeName = ident.Name
	}

	where := filepath.ToSlash(filepath.Clean(path))

	var lits []Literal
	for i, name := range spec.Names {
		if name.Name == "_" {
			continue
		}

		kind, text, err := constantText(spec.Values[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name.Name, err)
		}

		typ := typeName
		if typ == "" {
			typ = defaultType(kind)
		}

		lits = append(lits, Literal{
			Name:     name.Name,
			Type:     typ,
			Value:    text,
			Level:    opts.level,
			Profile:  opts.profile,
			Location: fmt.Sprintf("%s:%d", where, fset.Position(name.Pos()).Line),
		})
	}
	return lits, nil
}

// constantText returns the token kind and the value text of a constant
// expression, which must be a basic literal with an optional sign. The
// expression is evaluated the way the compiler does: integers come back in
// decimal and a negated float zero stays positive.
func constantText(expr ast.Expr) (token.Token, string, error) {
	op := token.ILLEGAL
	if u, ok := expr.(*ast.UnaryExpr); ok && (u.Op == token.SUB || u.Op == token.ADD) {
		op = u.Op
		expr = u.X
	}
	if p, ok := expr.(*ast.ParenExpr); ok {
		expr = p.X
	}

	lit, ok := expr.(*ast.BasicLit)
	if !ok {
		return token.ILLEGAL, "", fmt.Errorf("value must be a basic literal")
	}

	v := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
	if v.Kind() == constant.Unknown {
		return token.ILLEGAL, "", fmt.Errorf("unsupported literal %s", lit.Value)
	}
	if op != token.ILLEGAL {
		if v.Kind() == constant.String {
			return token.ILLEGAL, "", fmt.Errorf("signed string literal")
		}
		v = constant.UnaryOp(op, v, 0)
	}

	switch lit.Kind {
	case token.INT, token.CHAR:
		return lit.Kind, v.ExactString(), nil
	case token.FLOAT:
		// Keep the literal's own digits so ParseFloat rounds once, straight
		// to the target width.
		if op == token.SUB && constant.Sign(v) != 0 {
			return lit.Kind, "-" + lit.Value, nil
		}
		return lit.Kind, lit.Value, nil
	case token.STRING:
		return lit.Kind, constant.StringVal(v), nil
	default:
		return token.ILLEGAL, "", fmt.Errorf("unsupported literal %s", lit.Value)
	}
}

func defaultType(kind token.Token) string {
	switch kind {
	case token.FLOAT:
		return "float64"
	case token.CHAR:
		return "rune"
	case token.STRING:
		return "string"
	default:
		return "int"
	}
}

// getTypeString converts an ast.Expr to its string representation
func getTypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.ArrayType:
		return "[]" + getTypeString(t.Elt)
	case *ast.StarExpr:
		return "*" + getTypeString(t.X)
	case *ast.SelectorExpr:
		return getTypeString(t.X) + "." + t.Sel.Name
	default:
		return "unknown"
	}
}

func sanitizePackageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9' && b.Len() > 0) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "main"
	}
	return b.String()
}
