package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/go/ast/astutil"
)

const modulePath = "github.com/irrigo/dashboard"

var (
	moduleName string
	moduleRoot string
)

var validModuleName = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

var newModuleCmd = &cobra.Command{
	Use:   "new-module",
	Short: "Scaffold a new application module",
	Long: `Creates a new module with a module definition and a page-rendering handler,
and registers it in internal/app/modules.go and internal/app/dependencies.go.

Example:
  irrigo-cli new-module --name sensors`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validModuleName.MatchString(moduleName) {
			return fmt.Errorf("module name %q must be a lower-case Go identifier", moduleName)
		}
		if err := generateModule(moduleRoot, moduleName); err != nil {
			return fmt.Errorf("generate module: %w", err)
		}

		errModules := updateModulesFile(moduleRoot, moduleName)
		errDeps := updateDependenciesFile(moduleRoot, moduleName)
		if err := errors.Join(errModules, errDeps); err != nil {
			printNextSteps(cmd.ErrOrStderr(), moduleName)
			return fmt.Errorf("automatic registration failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created module %q in internal/modules/%s and registered it in internal/app.\n", moduleName, moduleName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newModuleCmd)
	newModuleCmd.Flags().StringVarP(&moduleName, "name", "n", "", "The name of the new module (e.g., 'sensors')")
	newModuleCmd.Flags().StringVar(&moduleRoot, "root", ".", "Repository root")
	_ = newModuleCmd.MarkFlagRequired("name")
}

type templateData struct {
	Module     string
	Name       string
	PascalName string
}

func generateModule(root, name string) error {
	data := templateData{
		Module:     modulePath,
		Name:       name,
		PascalName: cases.Title(language.English).String(name),
	}

	dir := filepath.Join(root, "internal", "modules", name)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create module directory: %w", err)
	}
	if err := generateFile(filepath.Join(dir, "module.go"), moduleTemplate, data); err != nil {
		return err
	}
	return generateFile(filepath.Join(dir, "handler.go"), handlerTemplate, data)
}

func generateFile(path, tmpl string, data templateData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return os.WriteFile(path, src, 0o644)
}

// updateModulesFile appends name.New(nameDeps(deps)) to the slice returned
// by NewModules.
func updateModulesFile(root, name string) error {
	path := filepath.Join(root, "internal", "app", "modules.go")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	astutil.AddImport(fset, file, modulePath+"/internal/modules/"+name)

	var found bool
	ast.Inspect(file, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "NewModules" {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				return true
			}
			lit, ok := ret.Results[0].(*ast.CompositeLit)
			if !ok {
				return false
			}
			lit.Elts = append(lit.Elts, &ast.CallExpr{
				Fun: &ast.SelectorExpr{X: ast.NewIdent(name), Sel: ast.NewIdent("New")},
				Args: []ast.Expr{&ast.CallExpr{
					Fun:  ast.NewIdent(name + "Deps"),
					Args: []ast.Expr{ast.NewIdent("deps")},
				}},
			})
			found = true
			return false
		})
		return false
	})
	if !found {
		return fmt.Errorf("%s: no composite literal returned by NewModules", path)
	}
	return writeAST(fset, file, path)
}

// updateDependenciesFile adds a nameDeps helper handing the API client to
// the new module.
func updateDependenciesFile(root, name string) error {
	path := filepath.Join(root, "internal", "app", "dependencies.go")
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	astutil.AddImport(fset, file, modulePath+"/internal/modules/"+name)

	depsType := &ast.SelectorExpr{X: ast.NewIdent(name), Sel: ast.NewIdent("Dependencies")}
	file.Decls = append(file.Decls, &ast.FuncDecl{
		Name: ast.NewIdent(name + "Deps"),
		Type: &ast.FuncType{
			Params: &ast.FieldList{List: []*ast.Field{{
				Names: []*ast.Ident{ast.NewIdent("deps")},
				Type:  ast.NewIdent("Dependencies"),
			}}},
			Results: &ast.FieldList{List: []*ast.Field{{Type: depsType}}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ReturnStmt{Results: []ast.Expr{&ast.CompositeLit{
				Type: depsType,
				Elts: []ast.Expr{&ast.KeyValueExpr{
					Key:   ast.NewIdent("API"),
					Value: &ast.SelectorExpr{X: ast.NewIdent("deps"), Sel: ast.NewIdent("API")},
				}},
			}}},
		}},
	})
	return writeAST(fset, file, path)
}

func writeAST(fset *token.FileSet, file *ast.File, path string) error {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func printNextSteps(w io.Writer, name string) {
	fmt.Fprintf(w, `Register the module by hand:

  internal/app/dependencies.go:
    import "%[1]s/internal/modules/%[2]s"

    func %[2]sDeps(deps Dependencies) %[2]s.Dependencies {
        return %[2]s.Dependencies{API: deps.API}
    }

  internal/app/modules.go, inside NewModules:
    %[2]s.New(%[2]sDeps(deps)),
`, modulePath, name)
}

const moduleTemplate = `package {{.Name}}

import (
	"context"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"{{.Module}}/internal/apiclient"
	"{{.Module}}/internal/module"
	"{{.Module}}/internal/registry"
)

// Dependencies are the services the {{.Name}} module needs.
type Dependencies struct {
	API *apiclient.Client
}

// Module serves the {{.Name}} pages under /{{.Name}}.
type Module struct {
	module.BaseModule
	api *apiclient.Client
}

func New(deps Dependencies) *Module {
	return &Module{api: deps.API}
}

func (m *Module) Name() string {
	return "{{.Name}}"
}

func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	if m.api == nil {
		api, ok := registry.Get(reg, registry.APIClientKey)
		if !ok {
			return errors.New("{{.Name}}: api client not registered")
		}
		m.api = api
	}
	slog.Info("Booting {{.PascalName}} module")
	h := NewHandler(m.api)
	g.GET("", h.Get)
	return nil
}
`

const handlerTemplate = `package {{.Name}}

import (
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"{{.Module}}/internal/apiclient"
	"{{.Module}}/internal/rendering"
)

type Handler struct {
	api *apiclient.Client
}

func NewHandler(api *apiclient.Client) *Handler {
	return &Handler{api: api}
}

func (h *Handler) Get(c echo.Context) error {
	p := rendering.NewPage(c, "{{.PascalName}}")
	return rendering.Page(c, http.StatusOK, p, g.Section(
		g.H1(cmp.Text(p.Title)),
		g.P(cmp.Text("Hello from the {{.Name}} module!")),
	))
}
`
