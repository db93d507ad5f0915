package dto

// BulkItemStatus is the outcome for one selected id.
type BulkItemStatus string

const (
	BulkItemSucceeded BulkItemStatus = "succeeded"
	BulkItemFailed    BulkItemStatus = "failed"
	// BulkItemSkipped marks ids never attempted because an earlier id failed.
	BulkItemSkipped BulkItemStatus = "skipped"
)

// BulkActionRequest selects the ids an action applies to.
type BulkActionRequest struct {
	Action string   `json:"action" validate:"required"`
	IDs    []string `json:"ids"`
}

// BulkItemResult reports one id.
type BulkItemResult struct {
	ID     string         `json:"id"`
	Status BulkItemStatus `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// BulkResult reports a bulk action. Mutations applied before a failure are kept.
type BulkResult struct {
	Tab       string           `json:"tab"`
	Action    string           `json:"action"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Aborted   bool             `json:"aborted"`
	Message   string           `json:"message,omitempty"`
	Results   []BulkItemResult `json:"results"`
	Stats     *DashboardStats  `json:"stats,omitempty"`
}
