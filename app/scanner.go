package app

import (
	"errors"
	"strings"

	valid "github.com/asaskevich/govalidator"
)

var ErrURLRequired = errors.New("URL is required")

type Scanner struct {
	checks []Check
}

func NewScanner(checks []Check) *Scanner {
	return &Scanner{checks: checks}
}

// Scan runs every check in order and collects the reasons of those that flag.
func (s *Scanner) Scan(rawURL string) (ScanResult, error) {
	if valid.IsNull(rawURL) {
		return ScanResult{}, ErrURLRequired
	}

	normalized := strings.ToLower(rawURL)
	reasons := []string{}
	for _, check := range s.checks {
		if check.Evaluate(normalized) == OutcomeFlagged {
			reasons = append(reasons, check.Reason)
		}
	}

	return ScanResult{
		Flagged: len(reasons) > 0,
		Reasons: reasons,
	}, nil
}
