package models

// Page is the serialized shape of one page of a listed collection.
type Page struct {
	Status     int    `json:"status"`
	Message    string `json:"message,omitempty"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Results    any    `json:"results"`
}

// PageOutOfRange is the payload returned in place of a Page when the
// requested page lies beyond the last page of the collection. The outer
// response stays successful; the failure is scoped to the page itself.
func PageOutOfRange() Envelope {
	return Envelope{
		Status:  400,
		Message: "No results found for the requested page",
	}
}
