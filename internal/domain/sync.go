package domain

// SyncError registra a falha de uma conta durante o pull-sync
type SyncError struct {
	AccountName string `json:"account_name"`
	Reason      string `json:"reason"`
}

// SyncResult é retornado ao chamador e nunca persistido
type SyncResult struct {
	Campaigns int         `json:"campaigns"`
	AdSets    int         `json:"adsets"`
	Ads       int         `json:"ads"`
	SpendRows int         `json:"spend_rows,omitempty"`
	Errors    []SyncError `json:"errors"`
}

func NewSyncResult() *SyncResult {
	return &SyncResult{Errors: make([]SyncError, 0)}
}

func (r *SyncResult) AddError(accountName, reason string) {
	r.Errors = append(r.Errors, SyncError{AccountName: accountName, Reason: reason})
}

// Add soma a contagem de entidades sincronizadas do tipo informado
func (r *SyncResult) Add(entityType EntityType, count int) {
	switch entityType {
	case EntityTypeCampaign:
		r.Campaigns += count
	case EntityTypeAdSet:
		r.AdSets += count
	case EntityTypeAd:
		r.Ads += count
	}
}
