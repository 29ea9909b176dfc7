package extract

import (
	"net/url"
	"sort"
	"strings"

	"github.com/use-agent/groundtruth/models"
)

// Fallback names what handles hosts with no registered extractor.
const (
	FallbackNone        = "none"
	FallbackReadability = "readability"
)

// StackExchangeSites are the network sites sharing the Stack Exchange template.
var StackExchangeSites = []string{
	"stackoverflow.com",
	"stackexchange.com",
	"superuser.com",
	"serverfault.com",
	"askubuntu.com",
	"mathoverflow.net",
}

type entry struct {
	domain    string
	extractor Extractor
}

// Registry maps domains to extractors. A domain matches its own host and
// every subdomain of it; the longest matching domain wins.
type Registry struct {
	entries  []entry
	fallback string
}

// NewRegistry creates an empty registry. fallback is FallbackNone or
// FallbackReadability; unknown values behave as FallbackNone.
func NewRegistry(fallback string) *Registry {
	return &Registry{fallback: fallback}
}

// DefaultRegistry registers Wikipedia and the Stack Exchange sites.
// wikiSource, when non-nil, makes Wikipedia bypass the browser.
func DefaultRegistry(wikiSource Fetcher, fallback string) *Registry {
	r := NewRegistry(fallback)
	r.Register("wikipedia.org", &Wikipedia{Source: wikiSource})
	for _, site := range StackExchangeSites {
		r.Register(site, StackExchange{})
	}
	return r
}

// Register maps domain, and its subdomains, to e. Re-registering a domain
// replaces its extractor.
func (r *Registry) Register(domain string, e Extractor) {
	domain = normalizeHost(domain)
	for i := range r.entries {
		if r.entries[i].domain == domain {
			r.entries[i].extractor = e
			return
		}
	}
	r.entries = append(r.entries, entry{domain: domain, extractor: e})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return len(r.entries[i].domain) > len(r.entries[j].domain)
	})
}

// Lookup resolves the extractor for rawURL's host.
func (r *Registry) Lookup(rawURL string) (Extractor, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, models.NewError(models.KindInvalidInput, "invalid document URL "+rawURL, err)
	}
	host := normalizeHost(u.Hostname())

	for _, e := range r.entries {
		if host == e.domain || strings.HasSuffix(host, "."+e.domain) {
			return e.extractor, nil
		}
	}

	if r.fallback == FallbackReadability {
		return NewReadability(u), nil
	}
	return Unimplemented{Site: host}, nil
}

// Domains lists the registered domains, longest first.
func (r *Registry) Domains() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.domain
	}
	return out
}

func normalizeHost(h string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), ".")
}
