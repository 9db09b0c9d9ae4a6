package model

import "fmt"

// Site describes the project the landing page advertises and the text it
// shows. Zero values are filled by WithDefaults.
type Site struct {
	Title      string `toml:"title"`
	Tagline    string `toml:"tagline"`
	Owner      string `toml:"owner"`
	Repo       string `toml:"repo"`
	AssetExt   string `toml:"asset_ext"`
	MirrorURL  string `toml:"mirror_url"`
	DateLayout string `toml:"date_layout"`
	Labels     Labels `toml:"labels"`
}

// Labels are the user-facing strings. Button labels are format strings
// taking the version.
type Labels struct {
	RequestFailed        string `toml:"request_failed"`
	AssetButton          string `toml:"asset_button"`
	ReleasesButton       string `toml:"releases_button"`
	MirrorButton         string `toml:"mirror_button"`
	NoNotes              string `toml:"no_notes"`
	ChangelogUnavailable string `toml:"changelog_unavailable"`
	EmptyTag             string `toml:"empty_tag"`
}

// DefaultSite returns the settings used when no site file is given
func DefaultSite() Site {
	return Site{
		Title:      "FireflyVPN",
		Tagline:    "Fast, private and simple.",
		Owner:      "Iskongkongyo",
		Repo:       "FireflyVPN",
		AssetExt:   ".apk",
		DateLayout: "January 2, 2006",
		Labels: Labels{
			RequestFailed:        "Request failed",
			AssetButton:          "Download on GitHub (%s)",
			ReleasesButton:       "Go to Releases (%s)",
			MirrorButton:         "⚡ High-speed download (%s)",
			NoNotes:              "No release notes available.",
			ChangelogUnavailable: "Could not load the changelog, see",
			EmptyTag:             "—",
		},
	}
}

// WithDefaults returns s with every empty field taken from DefaultSite
func (s Site) WithDefaults() Site {
	d := DefaultSite()
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&s.Title, d.Title)
	fill(&s.Tagline, d.Tagline)
	fill(&s.Owner, d.Owner)
	fill(&s.Repo, d.Repo)
	fill(&s.AssetExt, d.AssetExt)
	fill(&s.DateLayout, d.DateLayout)
	fill(&s.Labels.RequestFailed, d.Labels.RequestFailed)
	fill(&s.Labels.AssetButton, d.Labels.AssetButton)
	fill(&s.Labels.ReleasesButton, d.Labels.ReleasesButton)
	fill(&s.Labels.MirrorButton, d.Labels.MirrorButton)
	fill(&s.Labels.NoNotes, d.Labels.NoNotes)
	fill(&s.Labels.ChangelogUnavailable, d.Labels.ChangelogUnavailable)
	fill(&s.Labels.EmptyTag, d.Labels.EmptyTag)
	return s
}

// FullName is "owner/repo"
func (s Site) FullName() string {
	return s.Owner + "/" + s.Repo
}

// FallbackURL is the static releases page used when resolution fails
func (s Site) FallbackURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/releases", s.Owner, s.Repo)
}
