package app

import (
	"grantes_backend/internal/dto"
	"grantes_backend/internal/logger"
	"grantes_backend/pkg/apperrors"
)

// SeedDemoData registers the demo students and their welcome
// notifications on an empty backing store. Safe to run repeatedly:
// already-registered emails are skipped.
func (a *App) SeedDemoData() {
	demoStudents := []dto.RegisterInput{
		{
			FirstName:       "Juan",
			LastName:        "Dela Cruz",
			StudentID:       "2023-0001",
			Email:           "juan.delacruz@student.edu",
			Password:        "password123",
			ConfirmPassword: "password123",
			Course:          "BS Information Technology",
			Year:            "3rd Year",
		},
		{
			FirstName:       "Maria",
			LastName:        "Santos",
			StudentID:       "2023-0002",
			Email:           "maria.santos@student.edu",
			Password:        "password123",
			ConfirmPassword: "password123",
			Course:          "BS Education",
			Year:            "2nd Year",
		},
	}

	seeded := 0
	for _, input := range demoStudents {
		student, err := a.Students.Register(input)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeAlreadyExists) {
				continue
			}
			logger.WithError(err).Warn("seed student rejected", "email", input.Email)
			continue
		}
		seeded++

		if len(a.Notifications.All(student.ID)) == 0 {
			a.Notifications.Notify(student.ID, "Welcome!",
				"Welcome to GranTES Smart Subsidy Management System")
		}
	}

	if seeded > 0 {
		logger.Info("demo data seeded", "students", seeded)
	}
}
