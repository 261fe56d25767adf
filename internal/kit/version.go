package kit

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two kit version strings using semver.
// Returns -1 if current < candidate, 0 if equal, 1 if current > candidate.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(current, candidate string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	nv, err := parseSemver(candidate)
	if err != nil {
		return 0, fmt.Errorf("parsing candidate version %q: %w", candidate, err)
	}
	return cv.Compare(nv), nil
}

// IsUpgradeAvailable returns true if candidate is newer than current.
func IsUpgradeAvailable(current, candidate string) (bool, error) {
	cmp, err := CompareVersions(current, candidate)
	if err != nil {
		return false, err
	}
	return cmp == -1, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
