package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version for tag ranking.
type Version struct {
	*semver.Version
}

// NewVersion parses a strict MAJOR.MINOR.PATCH version with an optional
// prerelease identifier. Prefixes such as "v" must already be stripped.
func NewVersion(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// ZeroVersion returns 0.0.0 with no prerelease, the rank assigned to tags
// that cannot be parsed.
func ZeroVersion() *Version {
	return &Version{semver.New(0, 0, 0, "", "")}
}

// ParseLenient parses s, substituting the zero version when parsing fails so
// that a malformed tag sorts last instead of aborting the selection. The
// second return reports whether s parsed cleanly.
func ParseLenient(s string) (*Version, bool) {
	v, err := NewVersion(s)
	if err != nil {
		return ZeroVersion(), false
	}
	return v, true
}

// Compare compares two versions under semantic-versioning precedence.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// IsPrerelease reports whether the version carries a prerelease identifier.
func (v *Version) IsPrerelease() bool {
	return v.Prerelease() != ""
}

// PrereleaseParts splits the prerelease identifier into its suffix label and
// numeric counter. ok is false when the identifier is absent or not of the
// <label>.<digits> form.
func (v *Version) PrereleaseParts() (label string, counter uint64, ok bool) {
	pre := v.Prerelease()
	if pre == "" {
		return "", 0, false
	}
	idx := strings.LastIndex(pre, ".")
	if idx < 0 {
		return pre, 0, false
	}
	counter, err := strconv.ParseUint(pre[idx+1:], 10, 64)
	if err != nil {
		return pre[:idx], 0, false
	}
	return pre[:idx], counter, true
}
