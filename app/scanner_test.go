package app_test

import (
	"testing"

	"github.com/phux/urlsentry/app"

	"github.com/stretchr/testify/assert"
)

const (
	reasonSafeBrowsing = "Google Safe Browsing flagged this URL"
	reasonVirusTotal   = "VirusTotal flagged this URL"
	reasonURLScan      = "URLScan flagged this URL"
)

func TestCheck_Evaluate(t *testing.T) {
	t.Parallel()
	check := app.Check{
		Name:     "test",
		Keywords: []string{"foo", "bar-"},
		Reason:   "test flagged this URL",
	}

	tests := []struct {
		name   string
		rawURL string
		want   app.Outcome
	}{
		{name: "first keyword", rawURL: "http://foo.com", want: app.OutcomeFlagged},
		{name: "second keyword", rawURL: "http://bar-baz.com", want: app.OutcomeFlagged},
		{name: "keyword as part of a word", rawURL: "http://snafoozle.com", want: app.OutcomeFlagged},
		{name: "no keyword", rawURL: "http://bar.com", want: app.OutcomeSafe},
		{name: "empty", rawURL: "", want: app.OutcomeSafe},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, check.Evaluate(tt.rawURL))
		})
	}
}

func TestCheck_EvaluateWithoutKeywords(t *testing.T) {
	t.Parallel()
	assert.Equal(t, app.OutcomeSafe, app.Check{}.Evaluate("http://paypal.com"))
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		rawURL  string
		want    app.ScanResult
		wantErr error
	}{
		{
			name:   "safe browsing and urlscan",
			rawURL: "http://paypal-login.net",
			want: app.ScanResult{
				Flagged: true,
				Reasons: []string{reasonSafeBrowsing, reasonURLScan},
			},
		},
		{
			name:   "nothing matches",
			rawURL: "http://example.com",
			want:   app.ScanResult{Flagged: false, Reasons: []string{}},
		},
		{
			name:   "virustotal only",
			rawURL: "http://secure-bank.com",
			want: app.ScanResult{
				Flagged: true,
				Reasons: []string{reasonVirusTotal},
			},
		},
		{
			name:   "matching is case-insensitive",
			rawURL: "HTTPS://WWW.PayPal.COM/",
			want: app.ScanResult{
				Flagged: true,
				Reasons: []string{reasonSafeBrowsing},
			},
		},
		{
			name:   "all checks in fixed order",
			rawURL: "http://free-bank.net/login",
			want: app.ScanResult{
				Flagged: true,
				Reasons: []string{reasonSafeBrowsing, reasonVirusTotal, reasonURLScan},
			},
		},
		{
			name:   "urlscan via free- prefix",
			rawURL: "http://free-stuff.example",
			want: app.ScanResult{
				Flagged: true,
				Reasons: []string{reasonURLScan},
			},
		},
		{
			name:   "free without dash is safe",
			rawURL: "http://freedom.org",
			want:   app.ScanResult{Flagged: false, Reasons: []string{}},
		},
		{
			name:   "non URL strings are evaluated as is",
			rawURL: "not a url but says bank",
			want: app.ScanResult{
				Flagged: true,
				Reasons: []string{reasonVirusTotal},
			},
		},
		{
			name:    "empty URL",
			rawURL:  "",
			wantErr: app.ErrURLRequired,
		},
	}

	scanner := app.NewScanner(app.DefaultChecks())
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := scanner.Scan(tt.rawURL)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanner_ScanIsIdempotent(t *testing.T) {
	t.Parallel()
	scanner := app.NewScanner(app.DefaultChecks())

	first, err := scanner.Scan("http://secure-login.net")
	assert.NoError(t, err)
	second, err := scanner.Scan("http://secure-login.net")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScanner_ScanWithCustomChecks(t *testing.T) {
	t.Parallel()
	scanner := app.NewScanner([]app.Check{
		{Name: "second", Keywords: []string{"b"}, Reason: "b"},
		{Name: "first", Keywords: []string{"a"}, Reason: "a"},
	})

	got, err := scanner.Scan("ab")

	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got.Reasons)
}
