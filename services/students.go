package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/VaishnevSreejeev/canteen-ordering-app/db"
)

// NormalizeStudentID trims and upper-cases a raw student id so "cs21b001"
// and "CS21B001 " are the same student.
func NormalizeStudentID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// RegisterStudent records the student id on first login; repeat logins
// are no-ops.
func RegisterStudent(ctx context.Context, studentID string) error {
	studentID = NormalizeStudentID(studentID)
	if studentID == "" {
		return fmt.Errorf("student id is required")
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO students (student_id) VALUES ($1)
		ON CONFLICT (student_id) DO NOTHING`,
		studentID,
	)
	return err
}
