package usecase

import (
	"context"
	"strings"

	"github.com/compozy/latest-tag/internal/domain"
	"go.uber.org/zap"
)

// SelectLatestTagUseCase reduces a list of candidate tags to the single
// latest one under semantic-versioning precedence.
type SelectLatestTagUseCase struct {
	Logger *zap.Logger
}

type candidate struct {
	tag     string
	version *domain.Version
}

// Execute filters tags against the criteria, parses the survivors and picks
// the maximum. Ties between equal parsed versions resolve to the first
// occurrence in input order. The operation is a pure function of its inputs
// and safe to call concurrently.
func (uc *SelectLatestTagUseCase) Execute(
	_ context.Context,
	tags []string,
	criteria domain.SelectionCriteria,
) (string, error) {
	if err := criteria.Validate(); err != nil {
		return "", err
	}
	var candidates []candidate
	var err error
	switch criteria.Mode {
	case domain.MatchModeRegex:
		candidates, err = uc.regexCandidates(tags, criteria)
		if err != nil {
			return "", err
		}
	default:
		candidates = uc.globCandidates(tags, criteria)
	}
	best, ok := reduceLatest(candidates)
	if !ok {
		return "", &domain.NoMatchingTagError{Criteria: criteria.Describe()}
	}
	return best.tag, nil
}

// globCandidates narrows by literal prefix and applies release-mode
// semantics to the parsed version. Stable mode skips prereleases; prerelease
// mode keeps stable versions plus prereleases carrying the configured suffix
// label and a numeric counter.
func (uc *SelectLatestTagUseCase) globCandidates(
	tags []string,
	criteria domain.SelectionCriteria,
) []candidate {
	candidates := make([]candidate, 0, len(tags))
	for _, tag := range tags {
		if !strings.HasPrefix(tag, criteria.TagPrefix) {
			continue
		}
		version, parsed := domain.ParseLenient(tag[len(criteria.TagPrefix):])
		if !parsed {
			uc.warnDegraded(tag)
			candidates = append(candidates, candidate{tag: tag, version: version})
			continue
		}
		if version.IsPrerelease() {
			if !criteria.Prerelease {
				continue
			}
			label, _, ok := version.PrereleaseParts()
			if !ok || label != criteria.PrereleaseSuffix {
				continue
			}
		}
		candidates = append(candidates, candidate{tag: tag, version: version})
	}
	return candidates
}

// regexCandidates keeps only tags fully matching the anchored pattern, then
// parses them. The pattern already encodes the release mode, so no further
// filtering happens here.
func (uc *SelectLatestTagUseCase) regexCandidates(
	tags []string,
	criteria domain.SelectionCriteria,
) ([]candidate, error) {
	pattern, err := criteria.Pattern()
	if err != nil {
		return nil, err
	}
	candidates := make([]candidate, 0, len(tags))
	for _, tag := range tags {
		if !pattern.MatchString(tag) {
			continue
		}
		version, parsed := domain.ParseLenient(strings.TrimPrefix(tag, criteria.TagPrefix))
		if !parsed {
			uc.warnDegraded(tag)
		}
		candidates = append(candidates, candidate{tag: tag, version: version})
	}
	return candidates, nil
}

// reduceLatest picks the maximum candidate. The strictly-greater comparison
// keeps the earliest occurrence when parsed versions are equal.
func reduceLatest(candidates []candidate) (candidate, bool) {
	if len(candidates) == 0 {
		return candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.version.Compare(best.version) > 0 {
			best = c
		}
	}
	return best, true
}

func (uc *SelectLatestTagUseCase) warnDegraded(tag string) {
	uc.logger().Warn("tag does not parse as a semantic version, ranking it as 0.0.0",
		zap.String("tag", tag))
}

func (uc *SelectLatestTagUseCase) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}
