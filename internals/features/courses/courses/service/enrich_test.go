package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zamanat_backend/internals/features/courses/courses/model"
)

func TestAssignIcon(t *testing.T) {
	cases := map[string]string{
		"Full Stack Web Development": "globe",
		"React Bootcamp":             "globe",
		"Python for Data Analysis":   "code",
		"Ethical Hacking":            "lock",
		"Cloud Networking":           "server",
		"Android Development":        "mobile",
		"Machine Learning":           "sparkles",
		"Financial Accounting":       "book",
	}
	for title, want := range cases {
		assert.Equal(t, want, AssignIcon(title), title)
	}
}

func TestAssignTheme(t *testing.T) {
	assert.Equal(t, model.ThemeGreen, AssignTheme("Anything", model.CategoryIT))
	assert.Equal(t, model.ThemeGreen, AssignTheme("Web Design", model.CategoryOther))
	assert.Equal(t, model.ThemeBlue, AssignTheme("Statistics", model.CategoryDataScience))
	assert.Equal(t, model.ThemeOrange, AssignTheme("Algorithms", model.CategoryCS))
	assert.Equal(t, model.ThemeOrange, AssignTheme("Cyber Basics", model.CategoryOther))
	assert.Equal(t, model.ThemePurple, AssignTheme("Leadership", model.CategoryManagement))
	assert.Equal(t, model.ThemeIndigo, AssignTheme("Taxation", model.CategoryCommerce))
}

func TestDefaultTags(t *testing.T) {
	assert.Equal(t, "UG", DefaultTags(model.CategoryIT)[1].Label)
	assert.Equal(t, "UG", DefaultTags(model.CategoryCS)[1].Label)
	assert.Equal(t, "PG", DefaultTags(model.CategoryManagement)[1].Label)

	tags := DefaultTags(model.CategoryCommerce)
	assert.Equal(t, model.CourseTag{Label: "Certification", Type: model.TagPrimary}, tags[0])
	assert.Equal(t, model.TagSecondary, tags[1].Type)
}

func TestDefaultModules(t *testing.T) {
	mods := DefaultModules()
	assert.Len(t, mods, 4)
	for i, m := range mods {
		assert.Equal(t, i+1, m.ID)
	}
}

func TestCategoryCode(t *testing.T) {
	assert.Equal(t, "DS", CategoryCode(model.CategoryDataScience))
	assert.Equal(t, "OTH", CategoryCode("Astrology"))
	assert.True(t, ValidCategory(model.CategoryCommerce))
	assert.False(t, ValidCategory("it"))
}

func TestNumberModulesAndTagLabels(t *testing.T) {
	mods := NumberModules([]model.CourseModule{{Title: "a"}, {ID: 7, Title: "b"}, {Title: "c"}})
	assert.Equal(t, []int{1, 7, 3}, []int{mods[0].ID, mods[1].ID, mods[2].ID})

	labels := TagLabels([]model.CourseTag{{Label: " Certification "}, {Label: ""}, {Label: "UG"}})
	assert.Equal(t, []string{"certification", "ug"}, labels)
}
