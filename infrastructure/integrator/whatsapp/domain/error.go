package whatsappdomain

import "fmt"

// ErrorResponse representa a estrutura de erro da Graph API
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da Graph API
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado ou inválido
func (e *ErrorResponse) IsTokenExpired() bool {
	// 190 é o código de token inválido; 460, 463 e 467 são subcódigos de sessão expirada
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited indica limite de envio atingido para o número
func (e *ErrorResponse) IsRateLimited() bool {
	return e.Error.Code == 4 || e.Error.Code == 80007 || e.Error.Code == 130429
}

// APIError é retornado pelo cliente quando a Graph API responde com erro
type APIError struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp: status %d, código %d: %s", e.StatusCode, e.Response.Error.Code, e.Response.Error.Message)
}
