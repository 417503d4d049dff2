package entity

import "time"

// Tipos de entidad sobre los que se registran ajustes.
const (
	ChangeLogEntityInvoice  = "invoice"
	ChangeLogEntityLineItem = "line_item"
)

// ChangeLogEntry es un registro inmutable del historial de ajustes.
// Se crea exactamente una vez como efecto de una mutación de ajuste y nunca se
// actualiza ni se borra: el puerto de persistencia solo expone Append y listados.
type ChangeLogEntry struct {
	ID         string
	CompanyID  string
	InvoiceID  *string // factura asociada; nil si la línea aún no está facturada
	EntityType string  // "invoice" | "line_item"
	EntityID   string
	Field      string // campo mutado, ej. "adjustments", "total_amount"
	OldValue   string
	NewValue   string
	Reason     string // comentario libre del usuario que justifica el ajuste
	Actor      string // user ID de quien aplicó el ajuste
	CreatedAt  time.Time
}
