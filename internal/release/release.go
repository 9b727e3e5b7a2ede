// Package release answers "is a newer build published?" by asking the GitHub
// releases API, with a local cache so repeated checks within a day cost no
// network round trip. It only reports; it never downloads or installs.
package release

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/hrctl-labs/hrctl/internal/branding"
)

const (
	githubAPIBase = "https://api.github.com"
	cacheFileName = "version-check.json"

	// DefaultCacheMaxAge bounds how old a cached check may be before the
	// API is asked again.
	DefaultCacheMaxAge = 24 * time.Hour
)

// Release is the subset of a GitHub release this program cares about.
type Release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	PublishedAt string `json:"published_at"`
	Prerelease  bool   `json:"prerelease"`
}

// Checker fetches and caches release information.
type Checker struct {
	httpClient *http.Client
	apiBase    string
	cacheDir   string
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Checker) { c.httpClient = h }
}

// WithAPIBase points the checker at a different API host (tests use this).
func WithAPIBase(base string) Option {
	return func(c *Checker) { c.apiBase = strings.TrimRight(base, "/") }
}

// NewChecker returns a Checker caching under cacheDir.
func NewChecker(cacheDir string, opts ...Option) *Checker {
	c := &Checker{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiBase:    githubAPIBase,
		cacheDir:   cacheDir,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Latest fetches the latest published release from GitHub.
func (c *Checker) Latest() (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, branding.GitHubRepo())

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-release-check")
	// Optional token raises the rate limit.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no published release found")
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &rel, nil
}

// CompareVersions compares two version strings using semver, tolerating a
// leading "v". Returns -1 if current < latest, 0 if equal, 1 if newer.
func CompareVersions(current, latest string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return 0, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.Compare(lv), nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}

// CheckResult is the answer to one update check.
type CheckResult struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	ReleaseURL      string    `json:"release_url"`
	UpdateAvailable bool      `json:"update_available"`
	CheckedAt       time.Time `json:"checked_at"`
	FromCache       bool      `json:"-"`
}

// Check resolves whether a newer release than current exists, answering from
// the cache when it is fresh enough. Development builds (an unparseable
// current version, e.g. "dev") report no update rather than an error.
func (c *Checker) Check(current string, maxAge time.Duration) (*CheckResult, error) {
	if cached := c.loadCache(); cached != nil &&
		cached.CurrentVersion == current &&
		time.Since(cached.CheckedAt) <= maxAge {
		cached.FromCache = true
		return cached, nil
	}

	rel, err := c.Latest()
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		CurrentVersion: current,
		LatestVersion:  rel.TagName,
		ReleaseURL:     rel.HTMLURL,
		CheckedAt:      time.Now().UTC(),
	}
	if _, perr := parseSemver(current); perr == nil {
		cmp, cerr := CompareVersions(current, rel.TagName)
		if cerr != nil {
			return nil, cerr
		}
		result.UpdateAvailable = cmp == -1
	}

	c.saveCache(result)
	return result, nil
}

// loadCache reads the cached check. Any unreadable or unparseable cache
// behaves as absent.
func (c *Checker) loadCache() *CheckResult {
	data, err := os.ReadFile(filepath.Join(c.cacheDir, cacheFileName))
	if err != nil {
		return nil
	}
	var cached CheckResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	return &cached
}

// saveCache writes the check result. Failing to cache never fails the check.
func (c *Checker) saveCache(result *CheckResult) {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(c.cacheDir, cacheFileName), data, 0644)
}
