package release

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current, latest string
		want            int
	}{
		{"1.0.0", "1.0.1", -1},
		{"v1.0.0", "1.0.0", 0},
		{"2.0.0", "v1.9.9", 1},
		{"1.0.0-rc.1", "1.0.0", -1},
	}
	for _, tt := range tests {
		got, err := CompareVersions(tt.current, tt.latest)
		if err != nil {
			t.Fatalf("CompareVersions(%q, %q): %v", tt.current, tt.latest, err)
		}
		if got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestCompareVersions_Unparseable(t *testing.T) {
	if _, err := CompareVersions("dev", "1.0.0"); err == nil {
		t.Fatal("expected an error for a non-semver current version")
	}
}

func newReleaseServer(t *testing.T, tag string, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		fmt.Fprintf(w, `{"tag_name":%q,"name":"Release %s","html_url":"https://example.com/%s"}`, tag, tag, tag)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_ReportsUpdate(t *testing.T) {
	hits := 0
	srv := newReleaseServer(t, "v1.2.0", &hits)
	c := NewChecker(t.TempDir(), WithAPIBase(srv.URL))

	result, err := c.Check("1.0.0", DefaultCacheMaxAge)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.UpdateAvailable {
		t.Error("expected an update to be reported")
	}
	if result.LatestVersion != "v1.2.0" {
		t.Errorf("latest = %q", result.LatestVersion)
	}
	if result.FromCache {
		t.Error("first check cannot come from the cache")
	}
}

func TestCheck_SecondCallAnswersFromCache(t *testing.T) {
	hits := 0
	srv := newReleaseServer(t, "v1.2.0", &hits)
	c := NewChecker(t.TempDir(), WithAPIBase(srv.URL))

	if _, err := c.Check("1.0.0", DefaultCacheMaxAge); err != nil {
		t.Fatal(err)
	}
	result, err := c.Check("1.0.0", DefaultCacheMaxAge)
	if err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("expected 1 API hit, got %d", hits)
	}
	if !result.FromCache {
		t.Error("second check should come from the cache")
	}
}

func TestCheck_CacheIgnoredForDifferentCurrentVersion(t *testing.T) {
	hits := 0
	srv := newReleaseServer(t, "v1.2.0", &hits)
	dir := t.TempDir()
	c := NewChecker(dir, WithAPIBase(srv.URL))

	if _, err := c.Check("1.0.0", DefaultCacheMaxAge); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Check("1.1.0", DefaultCacheMaxAge); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Errorf("expected 2 API hits after a version change, got %d", hits)
	}
}

func TestCheck_StaleCacheRefetches(t *testing.T) {
	hits := 0
	srv := newReleaseServer(t, "v1.2.0", &hits)
	c := NewChecker(t.TempDir(), WithAPIBase(srv.URL))

	if _, err := c.Check("1.0.0", DefaultCacheMaxAge); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Check("1.0.0", -time.Second); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Errorf("expected a refetch for a stale cache, got %d hits", hits)
	}
}

func TestCheck_DevBuildReportsNoUpdate(t *testing.T) {
	hits := 0
	srv := newReleaseServer(t, "v1.2.0", &hits)
	c := NewChecker(t.TempDir(), WithAPIBase(srv.URL))

	result, err := c.Check("dev", DefaultCacheMaxAge)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.UpdateAvailable {
		t.Error("a dev build should not report an update")
	}
}

func TestLatest_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := NewChecker(t.TempDir(), WithAPIBase(srv.URL)).Latest()
	if err == nil {
		t.Fatal("expected a rate limit error")
	}
}
