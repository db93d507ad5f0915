package dto

import "github.com/noah-isme/funeral-admin-api/pkg/listing"

// TabPage is one page of an admin tab.
type TabPage struct {
	Tab       string               `json:"tab"`
	Items     interface{}          `json:"items"`
	Total     int                  `json:"total"`
	Page      int                  `json:"page"`
	PageSize  int                  `json:"page_size"`
	PageCount int                  `json:"page_count"`
	Buttons   []listing.PageButton `json:"buttons"`
	Selected  []string             `json:"selected,omitempty"`
}

// TabExport is a rendered export file.
type TabExport struct {
	FileName    string
	ContentType string
	Payload     []byte
}
