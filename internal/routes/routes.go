package routes

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/sf7293/history-compare/internal/errval"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultDocument []byte

// Route maps one path either to a page or to another path
type Route struct {
	Path     string `yaml:"path" json:"path"`
	Name     string `yaml:"name" json:"name"`
	Page     string `yaml:"page,omitempty" json:"page,omitempty"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Redirect string `yaml:"redirect,omitempty" json:"redirect,omitempty"`
}

func (r Route) IsRedirect() bool {
	return r.Redirect != ""
}

// Table is an immutable, validated set of routes
type Table struct {
	routes []Route
	byPath map[string]int
}

type document struct {
	Routes []Route `yaml:"routes"`
}

// Load parses the route table shipped with the binary
func Load() (*Table, error) {
	return Parse(defaultDocument)
}

// MustLoad is Load for program start up
func MustLoad() *Table {
	table, err := Load()
	if err != nil {
		panic(fmt.Sprintf("routes: %v", err))
	}

	return table
}

func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode route table: %w", err)
	}

	return New(doc.Routes)
}

// New validates routes and builds a table from them
func New(routes []Route) (*Table, error) {
	if len(routes) == 0 {
		return nil, errors.New("route table is empty")
	}

	t := &Table{
		routes: make([]Route, len(routes)),
		byPath: make(map[string]int, len(routes)),
	}
	copy(t.routes, routes)

	names := make(map[string]bool, len(routes))
	for i, route := range t.routes {
		if !strings.HasPrefix(route.Path, "/") {
			return nil, fmt.Errorf("route %q: path must be absolute", route.Path)
		}
		if _, exists := t.byPath[route.Path]; exists {
			return nil, fmt.Errorf("route %q: duplicate path", route.Path)
		}
		if route.Name == "" {
			return nil, fmt.Errorf("route %q: name is required", route.Path)
		}
		if names[route.Name] {
			return nil, fmt.Errorf("route %q: duplicate name %q", route.Path, route.Name)
		}
		if (route.Page == "") == (route.Redirect == "") {
			return nil, fmt.Errorf("route %q: exactly one of page and redirect must be set", route.Path)
		}

		t.byPath[route.Path] = i
		names[route.Name] = true
	}

	for _, route := range t.routes {
		if !route.IsRedirect() {
			continue
		}
		if _, err := t.Resolve(route.Path); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Routes returns the routes in declaration order
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *Table) Lookup(path string) (Route, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}

	return t.routes[i], true
}

// Resolve follows redirects from path until it reaches a page route
func (t *Table) Resolve(path string) (Route, error) {
	visited := map[string]bool{}
	current := path
	for {
		route, ok := t.Lookup(current)
		if !ok {
			if current == path {
				return Route{}, fmt.Errorf("route %q: %w", path, errval.ErrNotFound)
			}
			return Route{}, fmt.Errorf("route %q: redirect target %q: %w", path, current, errval.ErrNotFound)
		}
		if !route.IsRedirect() {
			return route, nil
		}
		if visited[current] {
			return Route{}, fmt.Errorf("route %q: redirect cycle through %q", path, current)
		}

		visited[current] = true
		current = route.Redirect
	}
}
