package repository

import "time"

// Órdenes de clasificación aceptadas en listados.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery es la forma uniforme de filtro que consumen todos los listados:
// texto libre, estado, rango de fechas, orden y posición por cursor.
//
// El cursor es un token opaco emitido por el propio repositorio (keyset sobre la
// columna de orden + id). Un cursor solo es válido para la combinación exacta de
// filtros y tamaño de página que lo produjo; la capa HTTP interpreta cada cursor
// únicamente bajo los filtros de su misma petición.
type ListQuery struct {
	Search    string     // búsqueda por texto libre (nombre, número, cliente...)
	Status    string     // filtro exacto por estado; vacío = todos
	From      *time.Time // límite inferior del rango de fechas (inclusive)
	To        *time.Time // límite superior del rango de fechas (inclusive)
	CampaignID string    // filtro por campaña (facturas y líneas de pauta)
	InvoiceID  string    // filtro por factura (líneas de pauta)
	SortBy    string     // columna de orden; cada repositorio valida contra su whitelist
	SortOrder string     // "asc" | "desc"; vacío = desc
	PageSize  int        // 1..100; el caso de uso aplica el default
	Cursor    string     // token opaco de la página anterior; vacío = inicio
}
