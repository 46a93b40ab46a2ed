package services

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// LogoResolver guesses a company logo URL from a free-text company name.
// Best-effort enrichment: every failure mode is "no logo found", never an
// error the caller has to handle.
type LogoResolver interface {
	Resolve(ctx context.Context, company string) (logoURL string, found bool)
}

// ClearbitLogoResolver probes the Clearbit logo service for a guessed domain.
type ClearbitLogoResolver struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClearbitLogoResolver() *ClearbitLogoResolver {
	return &ClearbitLogoResolver{
		Endpoint: "https://logo.clearbit.com",
		HTTPClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// GuessDomain derives a canonical web domain from a company name: lowercase,
// alphanumerics only, fixed .com suffix. "Acme Corp!" -> "acmecorp.com".
// Empty when nothing usable remains.
func GuessDomain(company string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(company)) {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + ".com"
}

func (r *ClearbitLogoResolver) Resolve(ctx context.Context, company string) (string, bool) {
	domain := GuessDomain(company)
	if domain == "" {
		return "", false
	}

	logoURL := r.Endpoint + "/" + domain
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, logoURL, nil)
	if err != nil {
		return "", false
	}

	client := r.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false
	}
	return logoURL, true
}
