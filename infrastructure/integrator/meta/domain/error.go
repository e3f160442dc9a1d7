package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta.
// A Meta pode devolver este envelope inclusive com HTTP 200.
type ErrorResponse struct {
	Error *ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// BusinessUseCaseUsage é o conteúdo do header X-Business-Use-Case-Usage
type BusinessUseCaseUsage map[string][]UsageEntry

type UsageEntry struct {
	Type                        string `json:"type"`
	CallCount                   int    `json:"call_count"`
	TotalCPUTime                int    `json:"total_cputime"`
	TotalTime                   int    `json:"total_time"`
	EstimatedTimeToRegainAccess int    `json:"estimated_time_to_regain_access"`
}

// MaxRegainMinutes retorna o maior tempo de espera informado, em minutos
func (u BusinessUseCaseUsage) MaxRegainMinutes() int {
	maxMinutes := 0
	for _, entries := range u {
		for _, entry := range entries {
			if entry.EstimatedTimeToRegainAccess > maxMinutes {
				maxMinutes = entry.EstimatedTimeToRegainAccess
			}
		}
	}
	return maxMinutes
}
