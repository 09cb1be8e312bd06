package database

import (
	"log"

	"gorm.io/gorm"

	courseModel "zamanat_backend/internals/features/courses/courses/model"
	assessmentModel "zamanat_backend/internals/features/learning/assessments/model"
	assignmentModel "zamanat_backend/internals/features/learning/assignments/model"
	paymentModel "zamanat_backend/internals/features/payments/enrollment/model"
	profileModel "zamanat_backend/internals/features/users/profile/model"
	userModel "zamanat_backend/internals/features/users/user/model"
)

// Migrate keeps the schema in step with the models. Skipped when DB_AUTO_MIGRATE=false.
func Migrate(db *gorm.DB) {
	if getenv("DB_AUTO_MIGRATE", "true") == "false" {
		log.Println("[MIGRATE] skipped (DB_AUTO_MIGRATE=false)")
		return
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[MIGRATE] pgcrypto: %v", err)
	}
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&profileModel.ProfileModel{},
		&courseModel.CourseModel{},
		&assignmentModel.AssignmentModel{},
		&assessmentModel.AssessmentModel{},
		&paymentModel.PaymentOrderModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}
