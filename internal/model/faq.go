// internal/model/faq.go
package model

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Language string `json:"language"`
}
