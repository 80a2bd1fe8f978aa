package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

type OrganizationService interface {
	Get(ctx context.Context, id int64) (*model.Organization, error)
	// GetBySubdomain resolves "grace" to the organization served from grace.<host>.
	GetBySubdomain(ctx context.Context, subdomain string) (*model.Organization, error)
}

type organizationService struct {
	orgStore store.OrganizationStore
	host     string
}

func NewOrganizationService(orgStore store.OrganizationStore, host string) OrganizationService {
	return &organizationService{orgStore: orgStore, host: host}
}

func (s *organizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) GetBySubdomain(ctx context.Context, subdomain string) (*model.Organization, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" || strings.Contains(subdomain, ".") {
		return nil, ErrOrgNotFound
	}

	org, err := s.orgStore.GetByHost(ctx, subdomain+"."+s.host)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization by host: %w", err)
	}
	return org, nil
}
