// internal/model/partner.go
package model

// Partner is an outreach partner (community leader, influencer, volunteer)
// assigned to an awareness campaign.
type Partner struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Languages []string `json:"languages"`
	Contact   string   `json:"contact"` // phone or email
	Campaign  string   `json:"campaign"`
}

// PreferredLanguage is the first language the partner listed, defaulting to
// English.
func (p *Partner) PreferredLanguage() string {
	if len(p.Languages) > 0 && p.Languages[0] != "" {
		return p.Languages[0]
	}
	return "English"
}
