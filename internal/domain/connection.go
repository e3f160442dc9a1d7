package domain

import (
	"fmt"
	"time"
)

type ConnectionType string

const (
	ConnectionTypeAdAccount       ConnectionType = "ad_account"
	ConnectionTypePage            ConnectionType = "page"
	ConnectionTypePixel           ConnectionType = "pixel"
	ConnectionTypeConversionEvent ConnectionType = "conversion_event"
)

// requiredParent define o tipo de pai obrigatório para cada tipo de conexão.
// Tipos ausentes do mapa não aceitam pai.
var requiredParent = map[ConnectionType]ConnectionType{
	ConnectionTypePixel:           ConnectionTypeAdAccount,
	ConnectionTypeConversionEvent: ConnectionTypePixel,
}

func (t ConnectionType) IsValid() bool {
	switch t {
	case ConnectionTypeAdAccount, ConnectionTypePage, ConnectionTypePixel, ConnectionTypeConversionEvent:
		return true
	}
	return false
}

// AccountConnection vincula um tenant a um objeto da plataforma de anúncios
type AccountConnection struct {
	ID                   string         `json:"id"`
	TenantID             string         `json:"tenant_id"`
	Type                 ConnectionType `json:"type"`
	ExternalID           string         `json:"external_id"`
	Name                 string         `json:"name"`
	EncryptedAccessToken *string        `json:"-"`
	Active               bool           `json:"active"`
	ParentID             *string        `json:"parent_id,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// HasToken indica se o OAuth já foi concluído para a conexão
func (c *AccountConnection) HasToken() bool {
	return c.EncryptedAccessToken != nil && *c.EncryptedAccessToken != ""
}

// ConnectionResponse é a representação pública, sem o token
type ConnectionResponse struct {
	ID         string         `json:"id"`
	Type       ConnectionType `json:"type"`
	ExternalID string         `json:"external_id"`
	Name       string         `json:"name"`
	Active     bool           `json:"active"`
	HasToken   bool           `json:"has_token"`
	ParentID   *string        `json:"parent_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (c *AccountConnection) ToResponse() ConnectionResponse {
	return ConnectionResponse{
		ID:         c.ID,
		Type:       c.Type,
		ExternalID: c.ExternalID,
		Name:       c.Name,
		Active:     c.Active,
		HasToken:   c.HasToken(),
		ParentID:   c.ParentID,
		CreatedAt:  c.CreatedAt,
	}
}

type RegisterConnectionRequest struct {
	Type        ConnectionType `json:"type" validate:"required,oneof=ad_account page pixel conversion_event"`
	ExternalID  string         `json:"external_id" validate:"required,max=64"`
	Name        string         `json:"name" validate:"required,max=255"`
	ParentID    *string        `json:"parent_id,omitempty"`
	AccessToken *string        `json:"access_token,omitempty"`
}

// ValidateConnectionParent aplica as regras de hierarquia entre conexões.
// parent é nil quando a conexão não informa pai.
func ValidateConnectionParent(child ConnectionType, parent *AccountConnection) error {
	want, needsParent := requiredParent[child]

	if !needsParent {
		if parent != nil {
			return fmt.Errorf("%w: %s must not have a parent", ErrInvalidParent, child)
		}
		return nil
	}

	if parent == nil {
		return fmt.Errorf("%w: %s requires a %s parent", ErrInvalidParent, child, want)
	}

	if parent.Type != want {
		return fmt.Errorf("%w: %s parent must be %s, got %s", ErrInvalidParent, child, want, parent.Type)
	}

	if !parent.Active {
		return fmt.Errorf("%w: parent %s is disabled", ErrInvalidParent, parent.ID)
	}

	return nil
}

// RemoteAdAccount é uma conta de anúncios visível para o token do usuário
type RemoteAdAccount struct {
	ExternalID string
	Name       string
}
