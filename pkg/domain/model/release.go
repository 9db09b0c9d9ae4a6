package model

import "strings"

// DefaultVersionLabel is displayed when a release carries no tag name
const DefaultVersionLabel = "Latest"

// ReleaseInfo is the subset of the GitHub "latest release" payload the page
// consumes. Field names follow the REST API so that cached entries keep the
// upstream JSON shape.
type ReleaseInfo struct {
	TagName     string  `json:"tag_name"`
	Body        string  `json:"body"`
	PublishedAt string  `json:"published_at,omitempty"`
	HTMLURL     string  `json:"html_url"`
	Assets      []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Version returns the tag name, or DefaultVersionLabel when absent
func (r *ReleaseInfo) Version() string {
	if r == nil || r.TagName == "" {
		return DefaultVersionLabel
	}
	return r.TagName
}

// FindAsset returns the first asset whose name ends with ext, compared case
// insensitively. Assets without a download URL are skipped.
func (r *ReleaseInfo) FindAsset(ext string) *Asset {
	if r == nil {
		return nil
	}
	ext = strings.ToLower(ext)
	for i := range r.Assets {
		a := &r.Assets[i]
		if strings.HasSuffix(strings.ToLower(a.Name), ext) && a.BrowserDownloadURL != "" {
			return a
		}
	}
	return nil
}

// DownloadTarget picks the download link: a matching asset first, then the
// release web page, then fallback. isAsset reports whether an asset matched.
func (r *ReleaseInfo) DownloadTarget(ext, fallback string) (url string, isAsset bool) {
	if a := r.FindAsset(ext); a != nil {
		return a.BrowserDownloadURL, true
	}
	if r != nil && r.HTMLURL != "" {
		return r.HTMLURL, false
	}
	return fallback, false
}
