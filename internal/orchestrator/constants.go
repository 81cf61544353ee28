package orchestrator

import (
	"os"
	"strings"
	"time"
)

// DefaultRunTimeout bounds a full selection run. The tool only walks the
// local tag namespace, so anything longer than a minute means something is
// wrong with the repository.
var DefaultRunTimeout = getTimeoutOrDefault("LATEST_TAG_TIMEOUT", time.Minute, 5*time.Second)

// isTestEnvironment detects if we're running in a test environment
func isTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, ".test") || strings.Contains(arg, "go test") {
			return true
		}
	}
	return os.Getenv("GO_TEST") == "true" || os.Getenv("TEST_MODE") == "true"
}

// getTimeoutOrDefault returns production timeout or test timeout based on environment
func getTimeoutOrDefault(envVar string, prodDefault, testDefault time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	if isTestEnvironment() {
		return testDefault
	}
	return prodDefault
}
