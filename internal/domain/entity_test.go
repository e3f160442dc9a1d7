package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    EntityStatus
		action     StatusAction
		want       EntityStatus
		wantReason string
	}{
		{"Ativa pode ser pausada", EntityStatusActive, StatusActionPause, EntityStatusPaused, ""},
		{"Pausada pode ser retomada", EntityStatusPaused, StatusActionResume, EntityStatusActive, ""},
		{"Pausada não pode ser pausada", EntityStatusPaused, StatusActionPause, "", "cannot pause campaign in status PAUSED"},
		{"Ativa não pode ser retomada", EntityStatusActive, StatusActionResume, "", "cannot resume campaign in status ACTIVE"},
		{"Arquivada não pode ser pausada", EntityStatusArchived, StatusActionPause, "", "cannot pause campaign in status ARCHIVED"},
		{"Arquivada não pode ser retomada", EntityStatusArchived, StatusActionResume, "", "cannot resume campaign in status ARCHIVED"},
		{"Excluída não pode ser retomada", EntityStatusDeleted, StatusActionResume, "", "cannot resume campaign in status DELETED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(EntityTypeCampaign, tt.current, tt.action)
			if tt.wantReason == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIllegalTransition))
			assert.Equal(t, tt.wantReason, err.Error())
		})
	}
}

func TestCanChangeBudget(t *testing.T) {
	assert.NoError(t, CanChangeBudget(EntityStatusActive))
	assert.NoError(t, CanChangeBudget(EntityStatusPaused))

	err := CanChangeBudget(EntityStatusArchived)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, "cannot change budget of campaign in status ARCHIVED", err.Error())

	assert.ErrorIs(t, CanChangeBudget(EntityStatusDeleted), ErrIllegalTransition)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5000), ToMinorUnits(decimal.RequireFromString("50")))
	assert.Equal(t, int64(1999), ToMinorUnits(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(1000), ToMinorUnits(decimal.RequireFromString("9.995")))

	amount, err := FromMinorUnits("12345")
	require.NoError(t, err)
	require.NotNil(t, amount)
	assert.True(t, decimal.RequireFromString("123.45").Equal(*amount))

	amount, err = FromMinorUnits("")
	assert.NoError(t, err)
	assert.Nil(t, amount)

	_, err = FromMinorUnits("abc")
	assert.Error(t, err)
}

func TestBulkResult_AddFailure(t *testing.T) {
	result := NewBulkResult()
	result.Updated = 2
	result.AddFailure("c1", "not found or not owned")
	result.AddFailure("c2", "cannot pause campaign in status PAUSED")

	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Failures, 2)
	assert.Equal(t, "c1", result.Failures[0].ID)
}
