package appupdate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"
)

// DefaultReleasesURL is the project's latest release page; GitHub redirects it to the newest tag
const DefaultReleasesURL = "https://github.com/ytget/bing-wallpaper/releases/latest"

const checkTimeout = 15 * time.Second

// ErrNoRelease means the latest release tag could not be determined
var ErrNoRelease = errors.New("latest release not found")

// Result describes the outcome of an update check
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

// Checker resolves the latest published release
type Checker struct {
	releasesURL string
	http        *http.Client
}

// NewChecker creates a checker for releasesURL (DefaultReleasesURL when empty)
func NewChecker(releasesURL string, hc *http.Client) *Checker {
	if releasesURL == "" {
		releasesURL = DefaultReleasesURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: checkTimeout}
	}
	return &Checker{releasesURL: releasesURL, http: hc}
}

// LatestTag follows the releases/latest redirect and returns the tag it lands on
func (c *Checker) LatestTag(ctx context.Context) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.releasesURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("check latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%w: status %d", ErrNoRelease, resp.StatusCode)
	}

	finalURL := resp.Request.URL
	tag := path.Base(finalURL.Path)
	if tag == "" || tag == "latest" || tag == "/" || tag == "." {
		return "", "", ErrNoRelease
	}
	return tag, finalURL.String(), nil
}

// Check compares currentVersion with the latest release
func (c *Checker) Check(ctx context.Context, currentVersion string) (Result, error) {
	tag, releaseURL, err := c.LatestTag(ctx)
	if err != nil {
		return Result{}, err
	}
	current := normalize(currentVersion)
	latest := normalize(tag)
	return Result{
		CurrentVersion:  current,
		LatestVersion:   latest,
		ReleaseURL:      releaseURL,
		UpdateAvailable: CompareVersions(current, latest) < 0,
	}, nil
}

// CompareVersions compares dotted versions numerically, ignoring a "v" prefix.
// Missing components count as zero; non-numeric components compare as strings.
func CompareVersions(a, b string) int {
	pa := strings.Split(normalize(a), ".")
	pb := strings.Split(normalize(b), ".")
	for i := 0; i < len(pa) || i < len(pb); i++ {
		var sa, sb string
		if i < len(pa) {
			sa = pa[i]
		}
		if i < len(pb) {
			sb = pb[i]
		}
		if c := compareComponent(sa, sb); c != 0 {
			return c
		}
	}
	return 0
}

func compareComponent(a, b string) int {
	if a == "" {
		a = "0"
	}
	if b == "" {
		b = "0"
	}
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(v), "v"), "V")
}
