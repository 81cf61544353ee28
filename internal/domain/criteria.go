package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode selects how candidate tags are matched against the configuration.
type MatchMode string

const (
	// MatchModeGlob narrows the tag namespace with a prefix glob and applies
	// release-mode semantics to the parsed version. This is the canonical
	// mode.
	MatchModeGlob MatchMode = "glob"
	// MatchModeRegex validates tags against a strict anchored pattern before
	// parsing, mirroring the tool's earlier behavior.
	MatchModeRegex MatchMode = "regex"
)

// DefaultPrereleaseSuffix is the prerelease label assumed when none is
// configured.
const DefaultPrereleaseSuffix = "prerelease"

// globEscaper makes a literal string safe for path.Match.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`)

// SelectionCriteria is the immutable input of a tag selection run.
type SelectionCriteria struct {
	TagPrefix        string
	PrereleaseSuffix string
	Prerelease       bool
	Mode             MatchMode
}

// Validate checks that the criteria can form a usable filter.
func (c SelectionCriteria) Validate() error {
	switch c.Mode {
	case MatchModeGlob, MatchModeRegex:
	default:
		return &ConfigurationError{
			Field:  "match_mode",
			Reason: fmt.Sprintf("unknown mode %q (expected %q or %q)", string(c.Mode), MatchModeGlob, MatchModeRegex),
		}
	}
	if c.Prerelease && c.PrereleaseSuffix == "" {
		return &ConfigurationError{
			Field:  "prerelease_suffix",
			Reason: "cannot be empty when selecting prerelease tags",
		}
	}
	return nil
}

// GlobPattern returns the shell glob used to narrow the tag namespace before
// selection. The prefix is escaped so it always matches literally.
func (c SelectionCriteria) GlobPattern() string {
	return globEscaper.Replace(c.TagPrefix) + "*"
}

// Pattern compiles the anchored matching rule for regex mode. Prefix and
// suffix are quoted so configuration is treated as literal text, never as
// pattern fragments.
func (c SelectionCriteria) Pattern() (*regexp.Regexp, error) {
	var expr string
	if c.Prerelease {
		expr = fmt.Sprintf(`^%s\d+\.\d+\.\d+-%s\.\d+$`,
			regexp.QuoteMeta(c.TagPrefix), regexp.QuoteMeta(c.PrereleaseSuffix))
	} else {
		expr = fmt.Sprintf(`^%s\d+\.\d+\.\d+$`, regexp.QuoteMeta(c.TagPrefix))
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &ConfigurationError{
			Field:  "tag_prefix",
			Reason: fmt.Sprintf("cannot build tag pattern: %v", err),
		}
	}
	return re, nil
}

// Describe renders the active criteria for diagnostics.
func (c SelectionCriteria) Describe() string {
	if c.Mode == MatchModeRegex {
		if re, err := c.Pattern(); err == nil {
			return fmt.Sprintf("pattern %s", re.String())
		}
	}
	mode := "stable releases only"
	if c.Prerelease {
		mode = fmt.Sprintf("%q prereleases and stable releases", c.PrereleaseSuffix)
	}
	return fmt.Sprintf("glob %q (%s)", c.GlobPattern(), mode)
}
