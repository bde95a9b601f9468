// internal/service/ai_service.go
package service

import (
	"time"

	"github.com/Hemannshu/xeno-crm/internal/model"
)

// AIService returns canned outputs for every operation. The interface
// contract is the real thing: prompt-shaped input, fixed-shape output.
// Callers must tolerate latency and must not assume determinism once a
// real model is wired in behind these methods.
type AIService struct {
	// Now is injectable so the send-time suggestion is testable.
	Now func() time.Time
}

func NewAIService() *AIService {
	return &AIService{Now: time.Now}
}

// GenerateSegmentRules converts a natural-language segmentation query
// into a structured rule string.
func (s *AIService) GenerateSegmentRules(naturalLanguageQuery string) string {
	return "lastOrderDate < now() - 180 days AND totalSpent > 5000"
}

// GenerateMessageVariants produces three message drafts for a campaign.
func (s *AIService) GenerateMessageVariants(campaign *model.Campaign) []string {
	return []string{
		"Hey there! Check out our latest offers...",
		"Don't miss out on these exclusive deals...",
		"We've got something special just for you...",
	}
}

// GenerateCampaignInsights summarizes a campaign's performance.
func (s *AIService) GenerateCampaignInsights(campaign *model.Campaign, stats *CampaignStats) string {
	return "The campaign showed strong engagement with a high open rate. " +
		"Consider targeting similar segments in future campaigns."
}

// SuggestOptimalSendTime recommends tomorrow at 10:00 local time.
func (s *AIService) SuggestOptimalSendTime(campaign *model.Campaign) time.Time {
	tomorrow := s.Now().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, tomorrow.Location())
}

// RecommendProductImages suggests images matching a message tone.
func (s *AIService) RecommendProductImages(messageTone string) []string {
	return []string{
		"https://example.com/image1.jpg",
		"https://example.com/image2.jpg",
		"https://example.com/image3.jpg",
	}
}
