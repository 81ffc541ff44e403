package models

// BenefitIcons is the icon vocabulary the landing page renderer understands.
var BenefitIcons = []string{"Heart", "Message", "Battery", "Star", "Shield", "Zap"}

// Benefit is one of the key selling points shown on the sales page.
type Benefit struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Testimonial is a customer review; Rating goes from 1 to 5.
type Testimonial struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// SalesPage is the landing page content bundle. It is always produced as a
// whole by a single generation call.
type SalesPage struct {
	Headline     string        `json:"headline"`
	Opening      string        `json:"opening"`
	Benefits     []Benefit     `json:"benefits"`
	HowItWorks   string        `json:"howItWorks"`
	Testimonials []Testimonial `json:"testimonials"`
	Urgency      string        `json:"urgency"`
	CTA          string        `json:"cta"`
}

// Clone returns a deep copy of the page.
func (p SalesPage) Clone() SalesPage {
	out := p
	if p.Benefits != nil {
		out.Benefits = append([]Benefit(nil), p.Benefits...)
	}
	if p.Testimonials != nil {
		out.Testimonials = append([]Testimonial(nil), p.Testimonials...)
	}
	return out
}
