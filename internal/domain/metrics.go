package domain

import "time"

// AdSpendCounter são as métricas diárias reportadas pela plataforma para uma entidade
type AdSpendCounter struct {
	TenantID             string     `json:"tenant_id"`
	EntityType           EntityType `json:"entity_type"`
	EntityID             string     `json:"entity_id"`
	Date                 time.Time  `json:"date"`
	Spend                float64    `json:"spend"`
	Impressions          int64      `json:"impressions"`
	Clicks               int64      `json:"clicks"`
	PlatformPurchases    int64      `json:"platform_purchases"`
	PlatformContentViews int64      `json:"platform_content_views"`
}

// RemoteSpend é uma linha diária de insights como reportada pela plataforma
type RemoteSpend struct {
	ExternalID   string
	Date         time.Time
	Spend        float64
	Impressions  int64
	Clicks       int64
	Purchases    int64
	ContentViews int64
}

// SpendTotals é a soma dos contadores de gasto de uma entidade num período
type SpendTotals struct {
	EntityID             string  `json:"entity_id"`
	Spend                float64 `json:"spend"`
	Impressions          int64   `json:"impressions"`
	Clicks               int64   `json:"clicks"`
	PlatformPurchases    int64   `json:"platform_purchases"`
	PlatformContentViews int64   `json:"platform_content_views"`
}

// DerivedMetrics são as razões calculadas na leitura; nunca persistidas
type DerivedMetrics struct {
	CTR                float64 `json:"ctr"`
	CPC                float64 `json:"cpc"`
	ROAS               float64 `json:"roas"`
	CR                 float64 `json:"cr"`
	CR1                float64 `json:"cr1"`
	CR2                float64 `json:"cr2"`
	CostPerContentView float64 `json:"cost_per_content_view"`
	CostPerCheckout    float64 `json:"cost_per_checkout"`
}

// EntityMetrics junta os números brutos e as razões de uma entidade
type EntityMetrics struct {
	EntityID       string            `json:"entity_id"`
	Spend          SpendTotals       `json:"spend"`
	Attribution    AttributionTotals `json:"attribution"`
	Metrics        DerivedMetrics    `json:"metrics"`
	MetricsPending bool              `json:"metrics_pending"`
}

type MetricsReport struct {
	Level     AttributionLevel `json:"level"`
	StartDate *string          `json:"start_date,omitempty"`
	EndDate   *string          `json:"end_date,omitempty"`
	Entities  []*EntityMetrics `json:"entities"`
	Summary   *EntityMetrics   `json:"summary"`
}

// ratio retorna 0 quando o denominador é zero
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// DeriveMetrics calcula as razões a partir dos contadores brutos.
// attribution nil significa que o rollup ainda não produziu dados para a entidade.
func DeriveMetrics(entityID string, spend SpendTotals, attribution *AttributionTotals) *EntityMetrics {
	pending := attribution == nil

	attr := AttributionTotals{EntityID: entityID}
	if attribution != nil {
		attr = *attribution
		attr.EntityID = entityID
	}
	spend.EntityID = entityID

	views := float64(attr.ContentViews)
	checkouts := float64(attr.Checkouts)
	purchases := float64(attr.Purchases)

	return &EntityMetrics{
		EntityID:    entityID,
		Spend:       spend,
		Attribution: attr,
		Metrics: DerivedMetrics{
			CTR:                ratio(float64(spend.Clicks), float64(spend.Impressions)) * 100,
			CPC:                ratio(spend.Spend, float64(spend.Clicks)),
			ROAS:               ratio(attr.Revenue, spend.Spend),
			CR:                 ratio(purchases, views) * 100,
			CR1:                ratio(checkouts, views) * 100,
			CR2:                ratio(purchases, checkouts) * 100,
			CostPerContentView: ratio(spend.Spend, views),
			CostPerCheckout:    ratio(spend.Spend, checkouts),
		},
		MetricsPending: pending,
	}
}

// Summarize agrega os números brutos de todas as entidades e só então calcula as razões.
// A linha de resumo fica pendente apenas se nenhuma entidade tiver atribuição.
func Summarize(entities []*EntityMetrics) *EntityMetrics {
	var spend SpendTotals
	var attr AttributionTotals
	hasAttribution := false

	for _, e := range entities {
		spend.Spend += e.Spend.Spend
		spend.Impressions += e.Spend.Impressions
		spend.Clicks += e.Spend.Clicks
		spend.PlatformPurchases += e.Spend.PlatformPurchases
		spend.PlatformContentViews += e.Spend.PlatformContentViews

		attr.ContentViews += e.Attribution.ContentViews
		attr.Checkouts += e.Attribution.Checkouts
		attr.Purchases += e.Attribution.Purchases
		attr.Revenue += e.Attribution.Revenue

		if !e.MetricsPending {
			hasAttribution = true
		}
	}

	if !hasAttribution {
		return DeriveMetrics("summary", spend, nil)
	}
	return DeriveMetrics("summary", spend, &attr)
}
