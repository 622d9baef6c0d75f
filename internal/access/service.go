// Package access implements the dashboard access-request/approval workflow.
// The loader is only invoked for approved identities, and every approval
// mutation invalidates the VOC table cache so the next read reflects shared
// state written elsewhere.
package access

import (
	"context"
	"errors"
	"strings"

	"github.com/webboardlab/voc-insight/internal/database"
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/logger"
)

// ErrInvalidEmail rejects requests without a usable identity.
var ErrInvalidEmail = errors.New("access: email is required")

// Invalidator is the cache hook called after approval mutations.
type Invalidator interface {
	Invalidate()
}

// Repository is the persistence the service needs; *database.AccessRepository
// satisfies it.
type Repository interface {
	Create(ctx context.Context, email, name string) error
	GetByEmail(ctx context.Context, email string) (*domain.AccessRequest, error)
	List(ctx context.Context, status *domain.AccessStatus) ([]*domain.AccessRequest, error)
	SetStatus(ctx context.Context, email string, status domain.AccessStatus, decidedBy string) error
	IsApproved(ctx context.Context, email string) (bool, error)
}

var _ Repository = (*database.AccessRepository)(nil)

// Service is the approval workflow.
type Service struct {
	repo        Repository
	invalidator Invalidator
	logger      logger.Logger
}

// NewService creates the workflow service. invalidator may be nil.
func NewService(repo Repository, invalidator Invalidator, log logger.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, logger: log}
}

// RequestAccess files (or re-files, idempotently) a pending request.
func (s *Service) RequestAccess(ctx context.Context, email, name string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if err := s.repo.Create(ctx, email, name); err != nil {
		return err
	}
	s.logger.Info("access requested", logger.String("email", email))
	return nil
}

// IsApproved reports whether the identity may view the dashboard.
func (s *Service) IsApproved(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	return s.repo.IsApproved(ctx, email)
}

// List returns requests, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *domain.AccessStatus) ([]*domain.AccessRequest, error) {
	return s.repo.List(ctx, status)
}

// Approve grants access and invalidates the table cache.
func (s *Service) Approve(ctx context.Context, email, decidedBy string) error {
	return s.decide(ctx, email, domain.AccessApproved, decidedBy)
}

// Revoke withdraws access and invalidates the table cache.
func (s *Service) Revoke(ctx context.Context, email, decidedBy string) error {
	return s.decide(ctx, email, domain.AccessRevoked, decidedBy)
}

func (s *Service) decide(ctx context.Context, email string, status domain.AccessStatus, decidedBy string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidEmail
	}
	if err := s.repo.SetStatus(ctx, email, status, decidedBy); err != nil {
		return err
	}

	// Approval state shares storage with the VOC spreadsheet's sibling
	// worksheets; force the next table read to see fresh data.
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}

	s.logger.Info("access decision recorded",
		logger.String("email", email),
		logger.String("status", string(status)),
		logger.String("decided_by", decidedBy))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
