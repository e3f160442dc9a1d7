package metadomain

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Tipos de ação usados para compras e visualizações de conteúdo do pixel
var (
	PurchaseActionTypes    = []string{"offsite_conversion.fb_pixel_purchase", "purchase", "omni_purchase"}
	ContentViewActionTypes = []string{"offsite_conversion.fb_pixel_view_content", "view_content", "omni_view_content"}
)

// Insight é uma linha do endpoint /insights com level=campaign|adset|ad
type Insight struct {
	CampaignID  string   `json:"campaign_id"`
	AdSetID     string   `json:"adset_id"`
	AdID        string   `json:"ad_id"`
	Spend       string   `json:"spend"`
	Impressions string   `json:"impressions"`
	Clicks      string   `json:"clicks"`
	Actions     []Action `json:"actions"`
	DateStart   string   `json:"date_start"`
	DateStop    string   `json:"date_stop"`
}

// ObjectID retorna o id da entidade do nível consultado
func (i *Insight) ObjectID(level string) string {
	switch level {
	case "campaign":
		return i.CampaignID
	case "adset":
		return i.AdSetID
	case "ad":
		return i.AdID
	}
	return ""
}

// ActionCount soma o primeiro tipo de ação encontrado na ordem de preferência
func (i *Insight) ActionCount(actionTypes []string) int64 {
	for _, actionType := range actionTypes {
		for _, action := range i.Actions {
			if action.ActionType != actionType {
				continue
			}

			value, err := strconv.ParseFloat(action.Value, 64)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"action_type": action.ActionType,
					"value":       action.Value,
				}).Warn("insights: erro ao converter valor da ação")
				return 0
			}

			return int64(value)
		}
	}

	return 0
}

func ParseInt(raw string) int64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logrus.WithField("value", raw).Warn("insights: erro ao converter inteiro")
		return 0
	}
	return value
}

func ParseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logrus.WithField("value", raw).Warn("insights: erro ao converter decimal")
		return 0
	}
	return value
}
