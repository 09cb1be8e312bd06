package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "zamanat_backend/internals/features/courses/courses/model"
	profileModel "zamanat_backend/internals/features/users/profile/model"
	userModel "zamanat_backend/internals/features/users/user/model"
)

var ErrCourseNotFound = errors.New("course not found")

type UserContact struct {
	Name  string
	Email string
	Phone string // "" when the profile has none
}

type CourseInfo struct {
	Title       string
	Price       int64
	ModuleCount int
}

// Directory resolves the people and courses a payment refers to.
type Directory interface {
	UserContact(ctx context.Context, userID uuid.UUID) (UserContact, error)
	CourseInfo(ctx context.Context, courseRef string) (CourseInfo, error)
}

type GormDirectory struct {
	DB *gorm.DB
}

var _ Directory = (*GormDirectory)(nil)

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{DB: db}
}

func (d *GormDirectory) UserContact(ctx context.Context, userID uuid.UUID) (UserContact, error) {
	var user userModel.UserModel
	if err := d.DB.WithContext(ctx).Select("id", "name", "email").Take(&user, "id = ?", userID).Error; err != nil {
		return UserContact{}, err
	}
	out := UserContact{Name: user.Name, Email: user.Email}

	var profile profileModel.ProfileModel
	err := d.DB.WithContext(ctx).
		Select("profile_name", "profile_phone_number").
		Where("profile_user_id = ?", userID).
		Take(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return out, err
	default:
		if profile.ProfilePhoneNumber != nil {
			out.Phone = strings.TrimSpace(*profile.ProfilePhoneNumber)
		}
		if strings.TrimSpace(profile.ProfileName) != "" {
			out.Name = profile.ProfileName
		}
	}
	return out, nil
}

// CourseInfo accepts a course uuid or slug.
func (d *GormDirectory) CourseInfo(ctx context.Context, courseRef string) (CourseInfo, error) {
	courseRef = strings.TrimSpace(courseRef)
	if courseRef == "" {
		return CourseInfo{}, ErrCourseNotFound
	}
	q := d.DB.WithContext(ctx).Model(&courseModel.CourseModel{})
	if id, err := uuid.Parse(courseRef); err == nil {
		q = q.Where("course_id = ?", id)
	} else {
		q = q.Where("course_slug = ?", courseRef)
	}

	var course courseModel.CourseModel
	err := q.Take(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CourseInfo{}, ErrCourseNotFound
	}
	if err != nil {
		return CourseInfo{}, err
	}
	return CourseInfo{
		Title:       course.CourseTitle,
		Price:       course.CoursePrice,
		ModuleCount: course.ModuleCount(),
	}, nil
}
