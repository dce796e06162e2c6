package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"whitepaper-portal-api/models"

	"gopkg.in/yaml.v3"
)

//go:embed site_content.yaml
var defaultSiteContent []byte

var (
	siteContentOnce sync.Once
	siteContent     *models.SiteContent
	siteContentErr  error
)

// ParseSiteContent decodes landing page copy from YAML.
func ParseSiteContent(raw []byte) (*models.SiteContent, error) {
	var content models.SiteContent
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if content.SystemPrompt == "" {
		return nil, fmt.Errorf("parse site content: system_prompt is empty")
	}
	return &content, nil
}

// SiteContent returns the landing copy. SITE_CONTENT_FILE overrides the
// embedded defaults; the result is loaded once per process.
func SiteContent() (*models.SiteContent, error) {
	siteContentOnce.Do(func() {
		raw := defaultSiteContent
		if path := os.Getenv("SITE_CONTENT_FILE"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				siteContentErr = fmt.Errorf("read site content: %w", err)
				return
			}
			raw = data
		}
		siteContent, siteContentErr = ParseSiteContent(raw)
	})
	return siteContent, siteContentErr
}
