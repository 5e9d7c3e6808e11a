package models

import "fmt"

// Manifest represents a parsed Cargo.toml. Only the tables the registry
// inspects are modeled; everything else ([lib], [features], ...) is ignored
// by the decoder.
type Manifest struct {
	Package           *Package `toml:"package"`
	Project           *Package `toml:"project"` // legacy alias for [package]
	Dependencies      DepsSet  `toml:"dependencies"`
	DevDependencies   DepsSet  `toml:"dev-dependencies"`
	BuildDependencies DepsSet  `toml:"build-dependencies"`
}

// Pkg returns the [package] table, falling back to the legacy [project]
// alias. Returns nil for virtual workspace manifests.
func (m *Manifest) Pkg() *Package {
	if m.Package != nil {
		return m.Package
	}
	return m.Project
}

// Package is the [package] table of a manifest. Most fields can be written
// either as a concrete value or as `field.workspace = true`, deferring the
// value to a workspace root the registry never sees.
type Package struct {
	Name          string             `toml:"name"`
	Version       InheritableString  `toml:"version"`
	Edition       InheritableString  `toml:"edition"`
	RustVersion   InheritableString  `toml:"rust-version"`
	Authors       InheritableStrings `toml:"authors"`
	Description   InheritableString  `toml:"description"`
	Homepage      InheritableString  `toml:"homepage"`
	Documentation InheritableString  `toml:"documentation"`
	Readme        ReadmeField        `toml:"readme"`
	Keywords      InheritableStrings `toml:"keywords"`
	Categories    InheritableStrings `toml:"categories"`
	Exclude       InheritableStrings `toml:"exclude"`
	Include       InheritableStrings `toml:"include"`
	License       InheritableString  `toml:"license"`
	LicenseFile   InheritableString  `toml:"license-file"`
	Repository    InheritableString  `toml:"repository"`
	Publish       PublishField       `toml:"publish"`
}

// ReadmePath resolves the package's readme policy. It returns the declared
// path, or "README.md" when the field is absent or set to true. ok is false
// when the package opted out with `readme = false` (or left the field
// deferred to a workspace).
func (p *Package) ReadmePath() (string, bool) {
	r := p.Readme
	switch {
	case r.Workspace:
		return "", false
	case r.Path != "":
		return r.Path, true
	case !r.Defined || r.Flag:
		return "README.md", true
	default:
		return "", false
	}
}

// InheritableString is a manifest field holding either a concrete string or
// a `{ workspace = true }` reference.
type InheritableString struct {
	Value     string
	Workspace bool
	Defined   bool
}

func (s *InheritableString) UnmarshalTOML(v any) error {
	s.Defined = true
	switch t := v.(type) {
	case string:
		s.Value = t
	case map[string]any:
		ws, _ := t["workspace"].(bool)
		if !ws {
			return fmt.Errorf("expected a string or `workspace = true`")
		}
		s.Workspace = true
	default:
		return fmt.Errorf("expected a string, got %T", v)
	}
	return nil
}

// Inherited reports whether the field is still deferred to a workspace root.
func (s InheritableString) Inherited() bool { return s.Workspace }

// InheritableStrings is the array counterpart of InheritableString, used for
// fields like authors, keywords and include/exclude lists.
type InheritableStrings struct {
	Values    []string
	Workspace bool
	Defined   bool
}

func (s *InheritableStrings) UnmarshalTOML(v any) error {
	s.Defined = true
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected an array of strings, got %T element", item)
			}
			s.Values = append(s.Values, str)
		}
	case map[string]any:
		ws, _ := t["workspace"].(bool)
		if !ws {
			return fmt.Errorf("expected an array or `workspace = true`")
		}
		s.Workspace = true
	default:
		return fmt.Errorf("expected an array, got %T", v)
	}
	return nil
}

// Inherited reports whether the field is still deferred to a workspace root.
func (s InheritableStrings) Inherited() bool { return s.Workspace }

// ReadmeField is the readme policy: a path, a boolean (false opts out, true
// requests the default lookup), or a workspace reference. The zero value
// means the field was absent, which callers treat the same as true.
type ReadmeField struct {
	Path      string
	Flag      bool
	Workspace bool
	Defined   bool
}

func (r *ReadmeField) UnmarshalTOML(v any) error {
	r.Defined = true
	switch t := v.(type) {
	case string:
		r.Path = t
	case bool:
		r.Flag = t
	case map[string]any:
		ws, _ := t["workspace"].(bool)
		if !ws {
			return fmt.Errorf("expected a string, boolean or `workspace = true`")
		}
		r.Workspace = true
	default:
		return fmt.Errorf("expected a string or boolean, got %T", v)
	}
	return nil
}

// Inherited reports whether the field is still deferred to a workspace root.
func (r ReadmeField) Inherited() bool { return r.Workspace }

// PublishField is the publish policy: a boolean, a list of allowed
// registries, or a workspace reference.
type PublishField struct {
	Flag       bool
	Registries []string
	Workspace  bool
	Defined    bool
}

func (p *PublishField) UnmarshalTOML(v any) error {
	p.Defined = true
	switch t := v.(type) {
	case bool:
		p.Flag = t
	case []any:
		for _, item := range t {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected an array of registry names, got %T element", item)
			}
			p.Registries = append(p.Registries, str)
		}
	case map[string]any:
		ws, _ := t["workspace"].(bool)
		if !ws {
			return fmt.Errorf("expected a boolean, array or `workspace = true`")
		}
		p.Workspace = true
	default:
		return fmt.Errorf("expected a boolean or array, got %T", v)
	}
	return nil
}

// Inherited reports whether the field is still deferred to a workspace root.
func (p PublishField) Inherited() bool { return p.Workspace }

// Dependency is one entry in a dependency table: a bare version requirement
// string, a detailed table, or a workspace reference.
type Dependency struct {
	Version   string
	Path      string
	Git       string
	Registry  string
	Optional  bool
	Workspace bool
}

func (d *Dependency) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string:
		d.Version = t
	case map[string]any:
		if ws, _ := t["workspace"].(bool); ws {
			d.Workspace = true
			return nil
		}
		d.Version, _ = t["version"].(string)
		d.Path, _ = t["path"].(string)
		d.Git, _ = t["git"].(string)
		d.Registry, _ = t["registry"].(string)
		d.Optional, _ = t["optional"].(bool)
	default:
		return fmt.Errorf("expected a version string or a table, got %T", v)
	}
	return nil
}

// DepsSet maps dependency names to their declarations.
type DepsSet map[string]Dependency

// Inherited reports whether any dependency in the set is still a workspace
// reference.
func (s DepsSet) Inherited() bool {
	for _, d := range s {
		if d.Workspace {
			return true
		}
	}
	return false
}
