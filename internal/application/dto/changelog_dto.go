package dto

// ChangeLogEntryResponse entrada inmutable del historial de ajustes.
type ChangeLogEntryResponse struct {
	ID         string `json:"id"`
	InvoiceID  string `json:"invoice_id,omitempty"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Field      string `json:"field"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	Reason     string `json:"reason"`
	Actor      string `json:"actor"`
	Timestamp  string `json:"timestamp"`
}

// ChangeLogPageResponse página del historial.
type ChangeLogPageResponse struct {
	Items []ChangeLogEntryResponse `json:"items"`
	PageMeta
}
