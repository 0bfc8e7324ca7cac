package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CeldaDTO celda censal serializada: el texto usa la misma convención de los
// archivos fuente ("19407.405", "C", "N/A", "123.45 + 2C").
type CeldaDTO struct {
	Tipo       string `json:"tipo"`
	Valor      string `json:"valor,omitempty"` // decimal como texto, solo celdas numéricas
	Censurados int    `json:"censurados,omitempty"`
	Texto      string `json:"texto"`
}
