package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/ideabridge/internal/i18n"
	"github.com/garnizeh/ideabridge/pkg/models"
)

const minPasswordLen = 6

type LoginInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	// Locale names the demo accounts.
	Locale i18n.Locale `json:"-"`
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Phone    string      `json:"phone"`
	Company  string      `json:"company"`
	Skills   string      `json:"skills"`
	Bio      string      `json:"bio"`
}

type ProfileInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Skills  string `json:"skills"`
	Bio     string `json:"bio"`
}

func demoUser(email string, loc i18n.Locale) (models.User, bool) {
	switch email {
	case "owner@example.com":
		return models.User{
			ID:    "1",
			Name:  i18n.T(loc, "auth.login.problemOwner"),
			Email: email,
			Role:  models.RoleProblemOwner,
		}, true
	case "pro@example.com":
		return models.User{
			ID:     "2",
			Name:   i18n.T(loc, "auth.login.itProfessional"),
			Email:  email,
			Role:   models.RoleITProfessional,
			Skills: []string{"React", "Node.js", "TypeScript"},
		}, true
	}
	return models.User{}, false
}

// Login signs in one of the demo accounts, or any other address as a fresh
// user named after the local part of the email.
func (s *Service) Login(ctx context.Context, in LoginInput) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	fe := fieldErrors{}
	fe.require("email", email, "auth.register.emailRequired")
	if err := fe.err(); err != nil {
		return models.User{}, err
	}

	role := in.Role
	if !role.Valid() {
		role = models.RoleProblemOwner
	}

	u, ok := demoUser(email, in.Locale)
	if !ok || len(in.Password) < minPasswordLen {
		name, _, _ := strings.Cut(email, "@")
		u = models.User{
			ID:    s.newID(),
			Name:  name,
			Email: email,
			Role:  role,
		}
	}
	u.CreatedAt = s.now()

	if err := s.store.SetCurrentUser(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	s.logger.Info("user signed in", slog.String("user_id", u.ID), slog.String("role", string(u.Role)))
	return u, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	role := in.Role
	if !role.Valid() {
		role = models.RoleProblemOwner
	}

	fe := fieldErrors{}
	fe.require("name", in.Name, "auth.register.nameRequired")
	fe.require("email", in.Email, "auth.register.emailRequired")
	if len(in.Password) < minPasswordLen {
		fe["password"] = "auth.register.passwordRequired"
	}
	if role == models.RoleITProfessional {
		fe.require("skills", in.Skills, "auth.register.skillsRequired")
	}
	if err := fe.err(); err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      role,
		Phone:     models.Optional(in.Phone),
		Company:   models.Optional(in.Company),
		Bio:       models.Optional(in.Bio),
		CreatedAt: s.now(),
	}
	if role == models.RoleITProfessional {
		u.Skills = splitSkills(in.Skills)
	}

	if err := s.store.SetCurrentUser(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	s.logger.Info("user registered", slog.String("user_id", u.ID), slog.String("role", string(u.Role)))
	return u, nil
}

// UpdateProfile overwrites the editable fields of the current user. Id, role
// and createdAt are kept.
func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (models.User, error) {
	u, err := s.requireRole(ctx)
	if err != nil {
		return models.User{}, err
	}

	fe := fieldErrors{}
	fe.require("name", in.Name, "profile.nameRequired")
	fe.require("email", in.Email, "profile.emailRequired")
	if err := fe.err(); err != nil {
		return models.User{}, err
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Phone = models.Optional(in.Phone)
	u.Company = models.Optional(in.Company)
	u.Skills = splitSkills(in.Skills)
	u.Bio = models.Optional(in.Bio)

	if err := s.store.SetCurrentUser(ctx, *u); err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return *u, nil
}

// CurrentUser returns the signed-in user or ErrUnauthenticated.
func (s *Service) CurrentUser(ctx context.Context) (models.User, error) {
	u, err := s.requireRole(ctx)
	if err != nil {
		return models.User{}, err
	}
	return *u, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
