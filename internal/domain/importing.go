package domain

// ImportResult summarizes the outcome of importing one submitted file.
// Every file in a batch yields exactly one result, in submission order.
type ImportResult struct {
	FileName     string `json:"file_name"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RunsImported int    `json:"runs_imported"`
	RunsFailed   int    `json:"runs_failed,omitempty"`
}
