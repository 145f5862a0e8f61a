package models

// GeneratedEmail represents one personalized email produced from a data row.
type GeneratedEmail struct {
	// ID is the 1-based position of the source row.
	ID int `json:"id"`
	// Recipient is the value of the detected email column (may be empty).
	Recipient string `json:"recipient"`
	// Subject is the subject after substitution.
	Subject string `json:"subject"`
	// Body is the body after substitution.
	Body string `json:"body"`
	// RowData maps column name to the raw cell value of the source row.
	RowData map[string]string `json:"row_data"`
}

// Statistics summarizes a generated batch.
type Statistics struct {
	Total            int  `json:"total"`
	WithRecipient    int  `json:"with_recipient"`
	WithoutRecipient int  `json:"without_recipient"`
	IsEmpty          bool `json:"is_empty"`
}
