package shell

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/joho/godotenv"
)

// Dialect is a shell syntax for environment exports
type Dialect string

const (
	Bash       Dialect = "bash"
	Zsh        Dialect = "zsh"
	Fish       Dialect = "fish"
	PowerShell Dialect = "powershell"
	Dotenv     Dialect = "dotenv"
)

// Dialects returns every supported dialect
func Dialects() []Dialect {
	return []Dialect{Bash, Zsh, Fish, PowerShell, Dotenv}
}

// ErrUnknownDialect is returned by ParseDialect
type ErrUnknownDialect struct {
	Name string
}

func (e *ErrUnknownDialect) Error() string {
	names := make([]string, 0, len(Dialects()))
	for _, d := range Dialects() {
		names = append(names, string(d))
	}
	return fmt.Sprintf("unsupported shell type: %s (supported: %s)", e.Name, strings.Join(names, ", "))
}

// ParseDialect resolves a dialect name, case-insensitively
func ParseDialect(name string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Dialects() {
		if d == known {
			return d, nil
		}
	}
	return "", &ErrUnknownDialect{Name: name}
}

// Var is a single environment variable binding
type Var struct {
	Name  string
	Value string
}

const posixTemplate = `{{range .Comments}}# {{.}}
{{end}}{{range .Vars}}export {{.Name}}={{quote .Value}}
{{end}}`

const fishTemplate = `{{range .Comments}}# {{.}}
{{end}}{{range .Vars}}set -x {{.Name}} {{quote .Value}}
{{end}}`

const powerShellTemplate = `{{range .Comments}}# {{.}}
{{end}}{{range .Vars}}$env:{{.Name}}={{quote .Value}}
{{end}}`

var templates = map[Dialect]*template.Template{
	Bash:       newTemplate(Bash, posixTemplate, posixQuote),
	Zsh:        newTemplate(Zsh, posixTemplate, posixQuote),
	Fish:       newTemplate(Fish, fishTemplate, fishQuote),
	PowerShell: newTemplate(PowerShell, powerShellTemplate, powerShellQuote),
}

func newTemplate(d Dialect, text string, quote func(string) string) *template.Template {
	return template.Must(template.New(string(d)).Funcs(template.FuncMap{"quote": quote}).Parse(text))
}

// Generator renders environment exports in one dialect
type Generator struct {
	Dialect  Dialect
	Comments []string
}

// NewGenerator creates a Generator for d
func NewGenerator(d Dialect, comments ...string) *Generator {
	return &Generator{Dialect: d, Comments: comments}
}

// Generate renders vars in order
func (g *Generator) Generate(vars []Var) (string, error) {
	if g.Dialect == Dotenv {
		return g.generateDotenv(vars)
	}

	tmpl, ok := templates[g.Dialect]
	if !ok {
		return "", &ErrUnknownDialect{Name: string(g.Dialect)}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Comments []string
		Vars     []Var
	}{g.comments(), vars}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// comments returns the comment lines flattened so that none spans more than
// one output line
func (g *Generator) comments() []string {
	out := make([]string, 0, len(g.Comments))
	for _, c := range g.Comments {
		out = append(out, strings.Join(strings.FieldsFunc(c, unicode.IsControl), " "))
	}
	return out
}

// generateDotenv uses godotenv's own serializer. It sorts keys, so the
// output order follows variable names rather than vars.
func (g *Generator) generateDotenv(vars []Var) (string, error) {
	env := make(map[string]string, len(vars))
	for _, v := range vars {
		env[v.Name] = v.Value
	}
	body, err := godotenv.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to render dotenv: %w", err)
	}

	var b strings.Builder
	for _, c := range g.comments() {
		b.WriteString("# " + c + "\n")
	}
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}

// posixQuote double-quotes s for bash and zsh
func posixQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}

// fishQuote double-quotes s for fish, where only \ " and $ are special
func fishQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`)
	return `"` + r.Replace(s) + `"`
}

// powerShellQuote double-quotes s, escaping with backticks
func powerShellQuote(s string) string {
	r := strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$")
	return `"` + r.Replace(s) + `"`
}
