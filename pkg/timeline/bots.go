package timeline

import "strings"

// botPatterns are substrings that mark an identity key as automation.
// Matching is case-insensitive; the key is lowered before the scan.
var botPatterns = []string{
	"[bot]",
	"-bot",
	"_bot",
	"bot-",
	"bot_",
	".bot",
	"github-actions",
	"dependabot",
	"renovate",
	"greenkeeper",
	"snyk",
	"codecov",
	"coveralls",
	"mergify",
	"sonarcloud",
	"deepsource",
	"azure-pipelines",
	"imgbot",
	"allcontributors",
	"whitesource",
	"stale",
}

// IsBot reports whether an identity key belongs to an automation account,
// either via the known pattern list or the configured bot set.
func IsBot(key string, bots map[string]bool) bool {
	lower := strings.ToLower(key)
	if bots[lower] {
		return true
	}
	for _, pattern := range botPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
