package ports

import "context"

// NotarySink notariza un hito de trazabilidad en un ledger externo (blockchain).
// Recibe el código de lote, el tipo de producto y la etapa; devuelve una
// referencia opaca de transacción, o cadena vacía si el servicio no está
// disponible. Es un side effect fire-and-forget: nunca condiciona la
// transacción de dominio que lo origina.
type NotarySink interface {
	Notarize(ctx context.Context, batchCode, productType, stage string) (string, error)
}
