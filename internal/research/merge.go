package research

import (
	"strings"

	"github.com/sells-group/startup-research/internal/model"
)

// Merge combines the partial per-source results into one complete record.
// Pure function: every field falls back to its documented default, so the
// result never carries a nil collection or empty scalar except
// EmployeeCount, which has no textual default.
func Merge(name, website string, wp model.WebsiteProfile, sp model.StructuredProfile, news []model.NewsItem) model.EntityRecord {
	rec := model.EntityRecord{
		ID:            model.Slugify(name),
		Name:          name,
		Website:       website,
		Description:   wp.Description,
		FoundedYear:   sp.FoundedYear,
		Headquarters:  sp.Headquarters,
		Industries:    sp.Industries,
		Funding:       sp.Funding,
		Founders:      sp.Founders,
		EmployeeCount: sp.EmployeeCount,
		Products:      wp.Products,
		SocialLinks:   wp.SocialLinks,
		News:          news,
	}

	if rec.Website == "" {
		rec.Website = wp.Website
	}
	if rec.Website == "" {
		rec.Website = "https://" + strings.ReplaceAll(strings.ToLower(name), " ", "") + ".com"
	}
	if rec.Description == "" {
		rec.Description = name + " is a company in the technology sector."
	}
	if rec.FoundedYear == "" {
		rec.FoundedYear = model.ValueUnknown
	}
	if rec.Headquarters == "" {
		rec.Headquarters = model.ValueUnknown
	}
	if len(rec.Industries) == 0 {
		rec.Industries = []string{"Technology"}
	}
	if len(rec.Funding) == 0 {
		rec.Funding = map[string]any{"Estimated": "Unknown"}
	}
	if rec.Founders == nil {
		rec.Founders = []string{}
	}
	if rec.Products == nil {
		rec.Products = []string{}
	}
	if rec.SocialLinks == nil {
		rec.SocialLinks = map[string]string{}
	}
	if rec.News == nil {
		rec.News = []model.NewsItem{}
	}

	return rec
}

// minimalRecord is the last-resort result when the whole pipeline fails:
// just the name, its slug, and empty defaults.
func minimalRecord(name string) model.EntityRecord {
	return Merge(name, "", model.WebsiteProfile{}, model.StructuredProfile{}, nil)
}
