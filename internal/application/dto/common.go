package dto

// ListResponse lista sin paginar; el backend entrega colecciones completas.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye la respuesta; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// BatchFailure sub-operación fallida de un lote.
type BatchFailure struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// BatchResponse resultado de un lote de asignaciones: lo que se aplicó y lo que falló.
type BatchResponse struct {
	OK        bool           `json:"ok"`
	Total     int            `json:"total"`
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}
