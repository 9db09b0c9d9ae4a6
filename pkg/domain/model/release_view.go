package model

// ReleaseView is the JSON projection of a populated page
type ReleaseView struct {
	Resolved      bool   `json:"resolved"`
	Version       string `json:"version"`
	DownloadURL   string `json:"download_url"`
	DownloadLabel string `json:"download_label"`
	MirrorLabel   string `json:"mirror_label,omitempty"`
	ChangelogTag  string `json:"changelog_tag"`
	ChangelogDate string `json:"changelog_date,omitempty"`
	ChangelogHTML string `json:"changelog_html"`
}

// NewReleaseView reads the release related elements of page. resolved is
// whether the loader produced a release.
func NewReleaseView(page *Page, resolved bool) *ReleaseView {
	return &ReleaseView{
		Resolved:      resolved,
		Version:       page.Text(ElemLatestVersion),
		DownloadURL:   page.Href(ElemDownloadButton),
		DownloadLabel: page.Text(ElemDownloadButton),
		MirrorLabel:   page.Text(ElemMirrorButton),
		ChangelogTag:  page.Text(ElemChangelogTag),
		ChangelogDate: page.Text(ElemChangelogDate),
		ChangelogHTML: page.HTML(ElemChangelogBody),
	}
}
