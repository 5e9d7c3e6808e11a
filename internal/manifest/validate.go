package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/crateworks/ingest/internal/models"
)

// Validate applies the publish-time checks to a parsed manifest: a [package]
// table must exist, every workspace-inheritable field must have been
// resolved to a concrete value by the publishing tool, and the rust-version
// field must be a bare version number. Callers re-extracting data from
// already-accepted archives skip this and use Parse alone.
func Validate(m *models.Manifest) error {
	pkg := m.Pkg()
	if pkg == nil {
		return errors.New("missing field `package`")
	}

	if err := validatePackage(pkg); err != nil {
		return err
	}

	if m.Dependencies.Inherited() || m.DevDependencies.Inherited() || m.BuildDependencies.Inherited() {
		return errors.New("inherited value not permitted in dependencies")
	}

	return nil
}

func validatePackage(pkg *models.Package) error {
	if name := inheritedField(pkg); name != "" {
		return fmt.Errorf("inherited value not permitted for field `%s`", name)
	}

	if pkg.RustVersion.Defined {
		if err := ValidateRustVersion(pkg.RustVersion.Value); err != nil {
			return err
		}
	}

	return nil
}

// inheritedField returns the name of the first package field still deferred
// to a workspace root, or "" when every field is resolved.
func inheritedField(pkg *models.Package) string {
	fields := []struct {
		name      string
		inherited bool
	}{
		{"edition", pkg.Edition.Inherited()},
		{"rust-version", pkg.RustVersion.Inherited()},
		{"version", pkg.Version.Inherited()},
		{"authors", pkg.Authors.Inherited()},
		{"description", pkg.Description.Inherited()},
		{"homepage", pkg.Homepage.Inherited()},
		{"documentation", pkg.Documentation.Inherited()},
		{"readme", pkg.Readme.Inherited()},
		{"keywords", pkg.Keywords.Inherited()},
		{"categories", pkg.Categories.Inherited()},
		{"exclude", pkg.Exclude.Inherited()},
		{"include", pkg.Include.Inherited()},
		{"license", pkg.License.Inherited()},
		{"license-file", pkg.LicenseFile.Inherited()},
		{"repository", pkg.Repository.Inherited()},
		{"publish", pkg.Publish.Inherited()},
	}

	for _, f := range fields {
		if f.inherited {
			return f.name
		}
	}
	return ""
}

// ValidateRustVersion checks that value is a bare dotted version number like
// "1.59" or "1.59.0". Range operators (^, ~, comparisons) and pre-release or
// build suffixes are rejected even though they parse as valid version
// requirements.
func ValidateRustVersion(value string) error {
	if _, err := semver.NewConstraint(value); err != nil {
		return fmt.Errorf("invalid `rust-version` value: %w", err)
	}
	for _, c := range value {
		if (c < '0' || c > '9') && c != '.' {
			return errors.New("invalid `rust-version` value")
		}
	}
	return nil
}
