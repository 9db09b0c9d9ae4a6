package usecase

import (
	"html"
	"time"

	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/markdown"
)

// RenderChangelog writes the tag, publication date and rendered notes of
// info into ui
func RenderChangelog(ui interfaces.UI, info *model.ReleaseInfo, site model.Site) {
	site = site.WithDefaults()
	renderer := markdown.New(markdown.WithPlaceholder(site.Labels.NoNotes))

	var body string
	var published string
	if info != nil {
		body = info.Body
		published = info.PublishedAt
	}

	ui.SetText(model.ElemChangelogTag, info.Version())
	ui.SetText(model.ElemChangelogDate, FormatDate(published, site.DateLayout))
	ui.SetHTML(model.ElemChangelogBody, renderer.Render(body))
}

// FormatDate renders an RFC 3339 timestamp with layout. Empty or
// unparsable input yields an empty string.
func FormatDate(iso, layout string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.Format(layout)
}

func changelogUnavailableHTML(message, fallback string) string {
	return `<p class="muted">` + html.EscapeString(message) +
		` <a href="` + html.EscapeString(fallback) + `" target="_blank" rel="noopener noreferrer">GitHub Releases</a>.</p>`
}
