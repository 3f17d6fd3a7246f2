// internal/repository/partner_repository.go
package repository

import (
	"strings"

	appErrors "github.com/kisumu-health/sha-connect-backend/internal/errors"
	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
)

// PartnerRepositoryInterface defines methods used by services and handlers
type PartnerRepositoryInterface interface {
	Add(p model.Partner) error
	ListAll() ([]model.Partner, error)
	SearchByName(q string) ([]model.Partner, error)
	GetByName(name string) (*model.Partner, error)
}

// PartnerRepository is the concrete implementation over the table store
type PartnerRepository struct {
	Store store.TableStore
}

func (r *PartnerRepository) load() ([]model.Partner, error) {
	var partners []model.Partner
	if err := r.Store.ReadTable(store.TablePartners, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *PartnerRepository) Add(p model.Partner) error {
	partners, err := r.load()
	if err != nil {
		return err
	}
	partners = append(partners, p)
	return r.Store.WriteTable(store.TablePartners, partners)
}

func (r *PartnerRepository) ListAll() ([]model.Partner, error) {
	return r.load()
}

// SearchByName matches partner names case-insensitively on a substring.
func (r *PartnerRepository) SearchByName(q string) ([]model.Partner, error) {
	partners, err := r.load()
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	matched := []model.Partner{}
	for _, p := range partners {
		if strings.Contains(strings.ToLower(p.Name), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *PartnerRepository) GetByName(name string) (*model.Partner, error) {
	partners, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if strings.EqualFold(partners[i].Name, name) {
			return &partners[i], nil
		}
	}
	return nil, appErrors.NewPartnerNotFound(name)
}
