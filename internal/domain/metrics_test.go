package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMetrics(t *testing.T) {
	spend := SpendTotals{Spend: 200, Impressions: 10000, Clicks: 250}
	attr := &AttributionTotals{ContentViews: 400, Checkouts: 40, Purchases: 10, Revenue: 500}

	got := DeriveMetrics("c1", spend, attr)

	assert.Equal(t, "c1", got.EntityID)
	assert.False(t, got.MetricsPending)
	assert.Equal(t, 2.5, got.Metrics.ROAS)
	assert.Equal(t, 2.5, got.Metrics.CTR)
	assert.Equal(t, 0.8, got.Metrics.CPC)
	assert.Equal(t, 2.5, got.Metrics.CR)
	assert.Equal(t, 10.0, got.Metrics.CR1)
	assert.Equal(t, 25.0, got.Metrics.CR2)
	assert.Equal(t, 0.5, got.Metrics.CostPerContentView)
	assert.Equal(t, 5.0, got.Metrics.CostPerCheckout)
}

func TestDeriveMetrics_DenominadoresZero(t *testing.T) {
	got := DeriveMetrics("c1", SpendTotals{}, &AttributionTotals{Revenue: 300})

	assert.Zero(t, got.Metrics.CTR)
	assert.Zero(t, got.Metrics.CPC)
	assert.Zero(t, got.Metrics.ROAS)
	assert.Zero(t, got.Metrics.CR)
	assert.Zero(t, got.Metrics.CR1)
	assert.Zero(t, got.Metrics.CR2)
	assert.Zero(t, got.Metrics.CostPerContentView)
	assert.Zero(t, got.Metrics.CostPerCheckout)
	assert.False(t, got.MetricsPending)
}

func TestDeriveMetrics_SemAtribuicaoFicaPendente(t *testing.T) {
	got := DeriveMetrics("c1", SpendTotals{Spend: 100, Impressions: 1000, Clicks: 10}, nil)

	assert.True(t, got.MetricsPending)
	assert.Zero(t, got.Metrics.ROAS)
	assert.Equal(t, 1.0, got.Metrics.CTR)
	assert.Equal(t, 10.0, got.Metrics.CPC)
	assert.Equal(t, "c1", got.Attribution.EntityID)
}

func TestSummarize_AgregaAntesDeCalcular(t *testing.T) {
	entities := []*EntityMetrics{
		DeriveMetrics("a", SpendTotals{Spend: 100, Clicks: 10, Impressions: 100}, &AttributionTotals{Revenue: 400}),
		DeriveMetrics("b", SpendTotals{Spend: 300, Clicks: 30, Impressions: 900}, &AttributionTotals{Revenue: 200}),
	}

	summary := Summarize(entities)

	require.NotNil(t, summary)
	// (400+200)/(100+300) e não a média de 4.0 e 0.666
	assert.Equal(t, 1.5, summary.Metrics.ROAS)
	assert.Equal(t, 4.0, summary.Metrics.CTR)
	assert.False(t, summary.MetricsPending)
}

func TestSummarize_PendenteQuandoNenhumaEntidadeTemAtribuicao(t *testing.T) {
	entities := []*EntityMetrics{
		DeriveMetrics("a", SpendTotals{Spend: 100}, nil),
		DeriveMetrics("b", SpendTotals{Spend: 50}, nil),
	}

	summary := Summarize(entities)
	assert.True(t, summary.MetricsPending)
	assert.Equal(t, 150.0, summary.Spend.Spend)

	entities = append(entities, DeriveMetrics("c", SpendTotals{}, &AttributionTotals{Purchases: 1, Revenue: 10}))
	assert.False(t, Summarize(entities).MetricsPending)
}
