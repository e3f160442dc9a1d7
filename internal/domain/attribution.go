package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NotAttributedTag é gravado pelo checkout quando o pedido não veio de um anúncio
const NotAttributedTag = "not_attributed"

type AttributionLevel string

const (
	AttributionLevelCampaign AttributionLevel = "campaign"
	AttributionLevelAdSet    AttributionLevel = "adset"
	AttributionLevelAd       AttributionLevel = "ad"
)

// levelTagPrefix é o prefixo que cada nível usa no seu campo de tag
var levelTagPrefix = map[AttributionLevel]string{
	AttributionLevelCampaign: "c_",
	AttributionLevelAdSet:    "as_",
	AttributionLevelAd:       "ad_",
}

func (l AttributionLevel) IsValid() bool {
	_, ok := levelTagPrefix[l]
	return ok
}

// EntityType retorna o tipo de entidade local correspondente ao nível
func (l AttributionLevel) EntityType() EntityType {
	return EntityType(l)
}

// ExcludedOrderStatuses não contam como compra
var ExcludedOrderStatuses = []string{"cancelled", "refunded"}

// Order é um pedido do log de pedidos, somente leitura
type Order struct {
	ID          string
	TenantID    string
	Total       decimal.Decimal
	Status      string
	CreatedAt   time.Time
	CampaignTag *string
	AdSetTag    *string
	AdTag       *string
}

// tagFor retorna o campo de tag do nível informado
func (o *Order) tagFor(level AttributionLevel) *string {
	switch level {
	case AttributionLevelCampaign:
		return o.CampaignTag
	case AttributionLevelAdSet:
		return o.AdSetTag
	case AttributionLevelAd:
		return o.AdTag
	}
	return nil
}

// TagResult classifica o conteúdo de um campo de tag
type TagResult int

const (
	TagAbsent TagResult = iota
	TagSentinel
	TagMalformed
	TagValid
)

// DecodeTag extrai o id da entidade de um campo de tag.
// Espaços nas bordas são ignorados e a comparação com o sentinela não diferencia maiúsculas.
func DecodeTag(level AttributionLevel, tag *string) (string, TagResult) {
	if tag == nil {
		return "", TagAbsent
	}

	value := strings.TrimSpace(*tag)
	if value == "" {
		return "", TagAbsent
	}

	if strings.EqualFold(value, NotAttributedTag) {
		return "", TagSentinel
	}

	prefix := levelTagPrefix[level]
	if !strings.HasPrefix(value, prefix) || len(value) == len(prefix) {
		return "", TagMalformed
	}

	return strings.TrimPrefix(value, prefix), TagValid
}

// AttributionKey identifica uma linha de contador
type AttributionKey struct {
	Level    AttributionLevel
	EntityID string
	Date     string // YYYY-MM-DD em UTC
}

// AttributionCounter é o contador diário de funil por entidade
type AttributionCounter struct {
	TenantID     string           `json:"tenant_id"`
	Level        AttributionLevel `json:"level"`
	EntityID     string           `json:"entity_id"`
	Date         time.Time        `json:"date"`
	ContentViews int64            `json:"content_views"`
	Checkouts    int64            `json:"checkouts"`
	Purchases    int64            `json:"purchases"`
	Revenue      decimal.Decimal  `json:"revenue"`
}

// AttributionTotals é a soma dos contadores de uma entidade num período
type AttributionTotals struct {
	EntityID     string  `json:"entity_id"`
	ContentViews int64   `json:"content_views"`
	Checkouts    int64   `json:"checkouts"`
	Purchases    int64   `json:"purchases"`
	Revenue      float64 `json:"revenue"`
}

// RollupResult resume uma execução do rollup
type RollupResult struct {
	TenantID        string `json:"tenant_id"`
	DateFrom        string `json:"date_from"`
	DateTo          string `json:"date_to"`
	OrdersScanned   int    `json:"orders_scanned"`
	CountersWritten int    `json:"counters_written"`
	SkippedTags     int    `json:"skipped_tags"`
}

type RollupRequest struct {
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
}

// AggregateOrders constrói os contadores de compras e receita a partir dos pedidos.
// Cada pedido contribui no máximo uma vez por nível. Retorna os contadores ordenados
// e a quantidade de tags malformadas ignoradas.
func AggregateOrders(tenantID string, orders []*Order) ([]*AttributionCounter, int) {
	counters := make(map[AttributionKey]*AttributionCounter)
	skipped := 0

	for _, order := range orders {
		if order == nil || isExcludedStatus(order.Status) {
			continue
		}

		day := order.CreatedAt.UTC()
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		for _, level := range []AttributionLevel{AttributionLevelCampaign, AttributionLevelAdSet, AttributionLevelAd} {
			entityID, result := DecodeTag(level, order.tagFor(level))
			if result == TagMalformed {
				skipped++
				continue
			}
			if result != TagValid {
				continue
			}

			key := AttributionKey{Level: level, EntityID: entityID, Date: date.Format(time.DateOnly)}
			counter, ok := counters[key]
			if !ok {
				counter = &AttributionCounter{
					TenantID: tenantID,
					Level:    level,
					EntityID: entityID,
					Date:     date,
				}
				counters[key] = counter
			}

			counter.Purchases++
			counter.Revenue = counter.Revenue.Add(order.Total)
		}
	}

	result := make([]*AttributionCounter, 0, len(counters))
	for _, counter := range counters {
		result = append(result, counter)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if result[i].Level != result[j].Level {
			return result[i].Level < result[j].Level
		}
		return result[i].EntityID < result[j].EntityID
	})

	return result, skipped
}

func isExcludedStatus(status string) bool {
	for _, excluded := range ExcludedOrderStatuses {
		if strings.EqualFold(status, excluded) {
			return true
		}
	}
	return false
}
