// internal/controller/ai_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/service"
)

// AIController exposes the AI stub layer. These endpoints are
// intentionally open; no session is required.
type AIController struct {
	AIService *service.AIService
}

func (c *AIController) GenerateSegmentRules(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
		http.Error(w, "invalid body, expected query", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"segment_rules": c.AIService.GenerateSegmentRules(body.Query),
	})
}

func (c *AIController) GenerateMessageVariants(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignName   string `json:"campaign_name"`
		CampaignType   string `json:"campaign_type"`
		Description    string `json:"description"`
		TargetAudience string `json:"target_audience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	campaign := &model.Campaign{
		Name:         body.CampaignName,
		Type:         body.CampaignType,
		Description:  body.Description,
		SegmentRules: body.TargetAudience,
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"variants": c.AIService.GenerateMessageVariants(campaign),
	})
}

func (c *AIController) GetOptimalSendTime(w http.ResponseWriter, r *http.Request) {
	campaign := &model.Campaign{
		Type:         r.URL.Query().Get("campaign_type"),
		SegmentRules: r.URL.Query().Get("target_audience"),
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"optimal_send_time": c.AIService.SuggestOptimalSendTime(campaign),
	})
}

func (c *AIController) GetRecommendedImages(w http.ResponseWriter, r *http.Request) {
	tone := r.URL.Query().Get("message_tone")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"images": c.AIService.RecommendProductImages(tone),
	})
}
