package metadomain

type Campaign struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	DailyBudget    string `json:"daily_budget,omitempty"`
	LifetimeBudget string `json:"lifetime_budget,omitempty"`
}

type AdSet struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	CampaignID     string `json:"campaign_id"`
	DailyBudget    string `json:"daily_budget,omitempty"`
	LifetimeBudget string `json:"lifetime_budget,omitempty"`
}

type Ad struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	AdSetID string `json:"adset_id"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// ListResponse é o envelope de listagem paginada da Graph API
type ListResponse[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

// UpdateResponse é a resposta de um POST de atualização
type UpdateResponse struct {
	Success bool `json:"success"`
}
