package depsolve

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Versioned identifies one version of a named component, written as name@version.
//
// Two Versioned identities conflict when they share a name, so a path may only ever contain a
// single version of each component.
type Versioned struct {
	Name    string
	Version string
}

// NewVersioned validates the version and returns an identity holding its canonical form.
func NewVersioned(name string, version string) (Versioned, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Versioned{}, ErrInvalidIdentity{Identity: name + "@" + version, Reason: "empty name"}
	}
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return Versioned{}, ErrInvalidIdentity{Identity: name + "@" + version, Reason: "invalid version", Cause: err}
	}
	return Versioned{Name: name, Version: v.String()}, nil
}

// ParseVersioned parses a name@version string.
func ParseVersioned(s string) (Versioned, error) {
	i := strings.LastIndex(s, "@")
	if i <= 0 {
		return Versioned{}, ErrInvalidIdentity{Identity: s, Reason: "expected name@version"}
	}
	return NewVersioned(s[:i], s[i+1:])
}

// MustParseVersioned is like ParseVersioned, but panics on invalid input.
func MustParseVersioned(s string) Versioned {
	v, err := ParseVersioned(s)
	if err != nil {
		panic(err)
	}
	return v
}

// AreConflicting returns true if two identities share a name.
func (Versioned) AreConflicting(ids []Versioned) bool {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return HasDuplicates(names)
}

// SemVer returns the parsed version. It panics if the identity was not built with
// NewVersioned or ParseVersioned.
func (v Versioned) SemVer() *semver.Version {
	return semver.MustParse(v.Version)
}

// Compare orders identities by name, then by semantic version.
func (v Versioned) Compare(other Versioned) int {
	if c := strings.Compare(v.Name, other.Name); c != 0 {
		return c
	}
	return v.SemVer().Compare(other.SemVer())
}

func (v Versioned) String() string {
	return fmt.Sprintf("%s@%s", v.Name, v.Version)
}
