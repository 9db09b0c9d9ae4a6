package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
)

func TestPage_MissingElementIsNoop(t *testing.T) {
	page := model.NewPage(model.ElemLatestVersion)

	page.SetText(model.ElemLatestVersion, "v1.0.0")
	page.SetText(model.ElemDownloadButton, "ignored")
	page.SetHref(model.ElemDownloadButton, "https://ignored")

	gt.Value(t, page.Text(model.ElemLatestVersion)).Equal("v1.0.0")
	gt.False(t, page.Has(model.ElemDownloadButton))
	gt.Value(t, page.Href(model.ElemDownloadButton)).Equal("")
	gt.Value(t, page.Classes(model.ElemDownloadButton) == nil).Equal(true)
}

func TestClassSet(t *testing.T) {
	page := model.NewPage(model.ElemMainNav)
	classes := page.Classes(model.ElemMainNav)

	gt.True(t, classes.Toggle("open"))
	gt.True(t, classes.Contains("open"))
	classes.Add("open")
	classes.Add("wide")
	gt.Value(t, classes.String()).Equal("open wide")

	gt.False(t, classes.Toggle("open"))
	gt.Value(t, classes.String()).Equal("wide")

	var nilSet *model.ClassSet
	nilSet.Add("x")
	nilSet.Remove("x")
	gt.False(t, nilSet.Toggle("x"))
	gt.Value(t, nilSet.String()).Equal("")
}
