package service

import (
	"strings"

	"zamanat_backend/internals/features/courses/courses/model"
)

type keywordRule struct {
	value    string
	keywords []string
}

// first matching rule wins, so order matters ("web" before "app")
var iconRules = []keywordRule{
	{"globe", []string{"web", "full stack", "html", "react"}},
	{"code", []string{"data", "science", "python"}},
	{"lock", []string{"cyber", "security", "hacking"}},
	{"server", []string{"network", "cloud"}},
	{"mobile", []string{"app", "mobile", "android", "ios"}},
	{"sparkles", []string{"ai", "artificial", "machine"}},
}

const fallbackIcon = "book"

// AssignIcon picks an icon key from keywords in the title.
func AssignIcon(title string) string {
	t := strings.ToLower(title)
	for _, r := range iconRules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.value
			}
		}
	}
	return fallbackIcon
}

// AssignTheme looks at the category first, then the title.
func AssignTheme(title, category string) string {
	t := strings.ToLower(title)
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "it") || strings.Contains(t, "web"):
		return model.ThemeGreen
	case strings.Contains(c, "data") || strings.Contains(t, "data"):
		return model.ThemeBlue
	case strings.Contains(c, "cs") || strings.Contains(t, "cyber"):
		return model.ThemeOrange
	case strings.Contains(c, "management"):
		return model.ThemePurple
	default:
		return model.ThemeIndigo
	}
}

var categoryCodes = map[string]string{
	model.CategoryIT:          "IT",
	model.CategoryDataScience: "DS",
	model.CategoryCS:          "CS",
	model.CategoryManagement:  "MGT",
	model.CategoryCommerce:    "COM",
	model.CategoryOther:       "OTH",
}

func CategoryCode(category string) string {
	if code, ok := categoryCodes[category]; ok {
		return code
	}
	return "OTH"
}

func ValidCategory(category string) bool {
	_, ok := categoryCodes[category]
	return ok
}

func DefaultModules() []model.CourseModule {
	return []model.CourseModule{
		{ID: 1, Title: "Introduction", Description: "Course overview and setup"},
		{ID: 2, Title: "Core Concepts", Description: "Fundamental principles"},
		{ID: 3, Title: "Advanced Topics", Description: "Deep dive into complex areas"},
		{ID: 4, Title: "Project", Description: "Hands-on practical assignment"},
	}
}

// DefaultTags: Certification plus UG for IT/CS categories, PG otherwise.
func DefaultTags(category string) []model.CourseTag {
	level := "PG"
	if strings.Contains(category, "IT") || strings.Contains(category, "CS") {
		level = "UG"
	}
	return []model.CourseTag{
		{Label: "Certification", Type: model.TagPrimary},
		{Label: level, Type: model.TagSecondary},
	}
}

// TagLabels lowercases the labels for the text[] search column.
func TagLabels(tags []model.CourseTag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if l := strings.ToLower(strings.TrimSpace(t.Label)); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// NumberModules fills missing module ids with their 1-based position.
func NumberModules(mods []model.CourseModule) []model.CourseModule {
	out := make([]model.CourseModule, len(mods))
	for i, m := range mods {
		if m.ID <= 0 {
			m.ID = i + 1
		}
		out[i] = m
	}
	return out
}
