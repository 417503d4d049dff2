package migrations

import "embed"

// FS embebe los archivos SQL de migración de este directorio. golang-migrate
// los lee vía el driver iofs al aplicar migraciones.
//
//go:embed *.sql
var FS embed.FS

// Version es la migración objetivo; subir al agregar archivos nuevos.
const Version = 1
