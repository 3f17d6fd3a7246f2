// internal/repository/faq_repository.go
package repository

import (
	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/store"
)

// FAQRepositoryInterface defines methods used by services and the seeder
type FAQRepositoryInterface interface {
	ListAll() ([]model.FAQ, error)
	ListByLanguage(language string) ([]model.FAQ, error)
	Replace(faqs []model.FAQ) error
}

type FAQRepository struct {
	Store store.TableStore
}

func (r *FAQRepository) ListAll() ([]model.FAQ, error) {
	var faqs []model.FAQ
	if err := r.Store.ReadTable(store.TableFAQs, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *FAQRepository) ListByLanguage(language string) ([]model.FAQ, error) {
	faqs, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	filtered := []model.FAQ{}
	for _, f := range faqs {
		if f.Language == language {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

// Replace overwrites the FAQ table wholesale, used by the seeder.
func (r *FAQRepository) Replace(faqs []model.FAQ) error {
	return r.Store.WriteTable(store.TableFAQs, faqs)
}
