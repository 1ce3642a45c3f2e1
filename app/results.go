package app

import (
	"fmt"
	"strings"
)

type ScanRequest struct {
	URL string `json:"url"`
}

type ScanResult struct {
	Flagged bool     `json:"flagged"`
	Reasons []string `json:"reasons"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Finding is the client-side outcome of scanning one URL.
type Finding struct {
	URL    string      `json:"url"`
	Result *ScanResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type Results struct {
	Findings []Finding
}

func (r *Results) FlaggedCount() int {
	count := 0
	for _, finding := range r.Findings {
		if finding.Result != nil && finding.Result.Flagged {
			count++
		}
	}

	return count
}

func (r *Results) ErrorCount() int {
	count := 0
	for _, finding := range r.Findings {
		if finding.Error != "" {
			count++
		}
	}

	return count
}

func (f Finding) String() string {
	switch {
	case f.Error != "":
		return fmt.Sprintf("ERROR   %s: %s", f.URL, f.Error)
	case f.Result != nil && f.Result.Flagged:
		return fmt.Sprintf("FLAGGED %s: %s", f.URL, strings.Join(f.Result.Reasons, "; "))
	default:
		return fmt.Sprintf("SAFE    %s", f.URL)
	}
}
