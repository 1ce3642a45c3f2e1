package app

import "strings"

type Outcome string

const (
	OutcomeFlagged Outcome = "flagged"
	OutcomeSafe    Outcome = "safe"
)

// Check flags a URL when it contains any of its keywords.
type Check struct {
	Name     string
	Keywords []string
	Reason   string
}

// Evaluate expects rawURL to be lowercased already.
func (c Check) Evaluate(rawURL string) Outcome {
	for _, keyword := range c.Keywords {
		if strings.Contains(rawURL, keyword) {
			return OutcomeFlagged
		}
	}

	return OutcomeSafe
}

func DefaultChecks() []Check {
	return []Check{
		{
			Name:     "google-safe-browsing",
			Keywords: []string{"paypal", "login"},
			Reason:   "Google Safe Browsing flagged this URL",
		},
		{
			Name:     "virustotal",
			Keywords: []string{"secure", "bank"},
			Reason:   "VirusTotal flagged this URL",
		},
		{
			Name:     "urlscan",
			Keywords: []string{"free-", ".net"},
			Reason:   "URLScan flagged this URL",
		},
	}
}
