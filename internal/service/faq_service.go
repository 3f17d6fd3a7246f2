// internal/service/faq_service.go
package service

import (
	"strings"

	"github.com/kisumu-health/sha-connect-backend/internal/model"
	"github.com/kisumu-health/sha-connect-backend/internal/repository"
)

const faqFallbackAnswer = "Sorry, I don't have an answer for that yet."

// FAQService serves the FAQ table and answers free-text questions by keyword
// match against it. AI-generated answers are an external concern; this is
// the offline fallback.
type FAQService struct {
	Repo repository.FAQRepositoryInterface
}

// List returns the FAQs for a language, defaulting to English.
func (s *FAQService) List(language string) ([]model.FAQ, error) {
	if language == "" {
		language = "English"
	}
	return s.Repo.ListByLanguage(language)
}

// Answer finds the first FAQ whose question or answer contains the user's
// text, preferring the requested language. The second return reports whether
// a real match was found.
func (s *FAQService) Answer(question, language string) (string, bool, error) {
	faqs, err := s.List(language)
	if err != nil {
		return "", false, err
	}
	if len(faqs) == 0 {
		// No FAQs in that language; fall back to the whole table.
		faqs, err = s.Repo.ListAll()
		if err != nil {
			return "", false, err
		}
	}

	needle := strings.ToLower(strings.TrimSpace(question))
	if needle == "" {
		return faqFallbackAnswer, false, nil
	}
	for _, f := range faqs {
		if strings.Contains(strings.ToLower(f.Question), needle) ||
			strings.Contains(strings.ToLower(f.Answer), needle) {
			return f.Answer, true, nil
		}
	}
	return faqFallbackAnswer, false, nil
}
