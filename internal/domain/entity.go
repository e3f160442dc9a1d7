package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EntityType string

const (
	EntityTypeCampaign EntityType = "campaign"
	EntityTypeAdSet    EntityType = "adset"
	EntityTypeAd       EntityType = "ad"
)

func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeCampaign, EntityTypeAdSet, EntityTypeAd:
		return true
	}
	return false
}

type EntityStatus string

const (
	EntityStatusActive   EntityStatus = "ACTIVE"
	EntityStatusPaused   EntityStatus = "PAUSED"
	EntityStatusArchived EntityStatus = "ARCHIVED"
	EntityStatusDeleted  EntityStatus = "DELETED"
)

type StatusAction string

const (
	StatusActionPause  StatusAction = "pause"
	StatusActionResume StatusAction = "resume"
)

func (a StatusAction) IsValid() bool {
	return a == StatusActionPause || a == StatusActionResume
}

// statusTransitions é a máquina de estados das entidades de anúncio.
// Qualquer par (status, ação) ausente é uma transição ilegal.
var statusTransitions = map[EntityStatus]map[StatusAction]EntityStatus{
	EntityStatusActive: {
		StatusActionPause: EntityStatusPaused,
	},
	EntityStatusPaused: {
		StatusActionResume: EntityStatusActive,
	},
}

// TransitionError é retornado quando a ação não é permitida no status atual
type TransitionError struct {
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// NextStatus resolve o status de destino de uma ação ou retorna ErrIllegalTransition
func NextStatus(entityType EntityType, current EntityStatus, action StatusAction) (EntityStatus, error) {
	if next, ok := statusTransitions[current][action]; ok {
		return next, nil
	}
	return "", &TransitionError{Reason: fmt.Sprintf("cannot %s %s in status %s", action, entityType, current)}
}

// CanChangeBudget indica se o orçamento pode ser alterado no status atual
func CanChangeBudget(status EntityStatus) error {
	switch status {
	case EntityStatusActive, EntityStatusPaused:
		return nil
	}
	return &TransitionError{Reason: fmt.Sprintf("cannot change budget of campaign in status %s", status)}
}

type BudgetType string

const (
	BudgetTypeDaily    BudgetType = "daily"
	BudgetTypeLifetime BudgetType = "lifetime"
)

func (b BudgetType) IsValid() bool {
	return b == BudgetTypeDaily || b == BudgetTypeLifetime
}

// AdEntity é a cópia local de uma campanha, conjunto de anúncios ou anúncio
type AdEntity struct {
	ID             string           `json:"id"`
	TenantID       string           `json:"tenant_id"`
	Type           EntityType       `json:"type"`
	Name           string           `json:"name"`
	Status         EntityStatus     `json:"status"`
	ExternalID     *string          `json:"external_id,omitempty"`
	ConnectionID   *string          `json:"connection_id,omitempty"`
	DailyBudget    *decimal.Decimal `json:"daily_budget,omitempty"`
	LifetimeBudget *decimal.Decimal `json:"lifetime_budget,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// IsMirrored indica se a entidade existe na plataforma
func (e *AdEntity) IsMirrored() bool {
	return e.ExternalID != nil && *e.ExternalID != ""
}

// RemoteEntity é o estado de uma entidade como reportado pela plataforma
type RemoteEntity struct {
	ExternalID     string
	Name           string
	Status         EntityStatus
	DailyBudget    *decimal.Decimal
	LifetimeBudget *decimal.Decimal
}

// ToMinorUnits converte um valor monetário para centavos, o formato aceito pela plataforma
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits converte o valor em centavos reportado pela plataforma
func FromMinorUnits(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil, nil
	}

	minor, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid minor unit amount %q: %w", raw, err)
	}

	amount := minor.Shift(-2)
	return &amount, nil
}

type BulkStatusRequest struct {
	IDs    []string     `json:"ids" validate:"required,min=1,dive,required"`
	Action StatusAction `json:"action" validate:"required,oneof=pause resume"`
}

type BulkBudgetRequest struct {
	IDs        []string        `json:"ids" validate:"required,min=1,dive,required"`
	Budget     decimal.Decimal `json:"budget"`
	BudgetType BudgetType      `json:"budget_type" validate:"required,oneof=daily lifetime"`
}

// BulkFailure descreve por que um item do lote não foi aplicado
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult é o resultado de uma operação em lote. Updated + Skipped cobre todos os ids distintos.
type BulkResult struct {
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Failures []BulkFailure `json:"failures"`
}

func NewBulkResult() *BulkResult {
	return &BulkResult{Failures: make([]BulkFailure, 0)}
}

func (r *BulkResult) AddFailure(id, reason string) {
	r.Failures = append(r.Failures, BulkFailure{ID: id, Reason: reason})
	r.Skipped = len(r.Failures)
}
