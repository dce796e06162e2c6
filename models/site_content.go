package models

// SiteContent is the static landing page copy served to the frontend.
type SiteContent struct {
	Hero         SiteHero        `json:"hero" yaml:"hero"`
	Offer        []OfferPoint    `json:"offer" yaml:"offer"`
	HowItWorks   []HowItWorkStep `json:"how_it_works" yaml:"how_it_works"`
	Requirements []string        `json:"requirements" yaml:"requirements"`
	SystemPrompt string          `json:"system_prompt" yaml:"system_prompt"`
}

type SiteHero struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	CTA      string `json:"cta" yaml:"cta"`
}

type OfferPoint struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type HowItWorkStep struct {
	Step   int    `json:"step" yaml:"step"`
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}
