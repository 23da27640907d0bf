package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
	"github.com/brunofarias/jornada-lms/internal/app/repositories"
	"github.com/brunofarias/jornada-lms/internal/config"
	"github.com/brunofarias/jornada-lms/internal/pkg/apperrors"
	"github.com/brunofarias/jornada-lms/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account and a sample course
// so a fresh installation is usable right away. Existing rows are left
// untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	adminID, err := seedAdmin(ctx, repos, lgr)
	if err != nil {
		return err
	}

	if err := seedSampleCourse(ctx, repos, adminID, lgr); err != nil {
		return err
	}
	return nil
}

func seedAdmin(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) (int64, error) {
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@jornada.app")

	existing, err := repos.UserRepository.GetByEmail(ctx, adminEmail)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return 0, err
	}

	password := config.GetEnv("ADMIN_PASSWORD", "mudar123")
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	admin := &models.User{
		Email:     adminEmail,
		CPF:       "00000000000",
		Password:  hashed,
		FirstName: "Administrador",
		LastName:  "Jornada",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	id, err := repos.UserRepository.Create(ctx, admin)
	if err != nil {
		return 0, err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
	return id, nil
}

func seedSampleCourse(ctx context.Context, repos *repositories.Repositories, instructorID int64, lgr zerolog.Logger) error {
	slug := "fundamentos-da-fe"

	if _, err := repos.CourseRepository.GetBySlug(ctx, slug); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrCourseNotFound) {
		return err
	}

	certText := "Certificamos que {NOME} concluiu o curso {CURSO} com carga horária de {CARGA} horas."
	course := &models.Course{
		Title:            "Fundamentos da Fé",
		Description:      "Curso introdutório para novos membros",
		Slug:             slug,
		InstructorID:     &instructorID,
		RequiresApproval: true,
		CertificateText:  &certText,
		WorkloadHours:    8,
	}
	courseID, err := repos.CourseRepository.Create(ctx, course)
	if err != nil {
		return err
	}

	moduleDesc := "Primeiros passos"
	module := &models.CourseModule{
		CourseID:    courseID,
		Title:       "Módulo 1 - Introdução",
		Description: &moduleDesc,
		Position:    1,
	}
	moduleID, err := repos.CourseRepository.CreateModule(ctx, module)
	if err != nil {
		return err
	}

	welcome := "Bem-vindo ao curso! Nesta primeira aula vamos conhecer a plataforma."
	lesson := &models.Lesson{
		ModuleID: moduleID,
		Title:    "Boas-vindas",
		Type:     models.LessonTypeText,
		Content:  &welcome,
		Position: 1,
	}
	if _, err := repos.LessonRepository.Create(ctx, lesson); err != nil {
		return err
	}

	lgr.Info().Str("slug", slug).Msg("Sample course created")
	return nil
}
