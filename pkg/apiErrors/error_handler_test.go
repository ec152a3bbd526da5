package apiErrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodedError struct {
	code    string
	message string
}

func (e *fakeCodedError) Error() string { return e.message }
func (e *fakeCodedError) APICode() string { return e.code }
func (e *fakeCodedError) APIMessage() string { return e.message }

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{name: "Estoque insuficiente retorna 409", code: ErrInsufficientStock, expectedStatus: http.StatusConflict},
		{name: "Venda não encontrada retorna 404", code: ErrSaleNotFound, expectedStatus: http.StatusNotFound},
		{name: "Rate limit retorna 429", code: ErrTooManyRequests, expectedStatus: http.StatusTooManyRequests},
		{name: "Código desconhecido retorna 500", code: "XXX_999", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestWriteFromError(t *testing.T) {
	t.Run("Usa o código do erro tipado mesmo quando embrulhado", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("contexto: %w", &fakeCodedError{code: ErrShiftRequired, message: "turno fechado"})

		WriteFromError(rec, err, ErrInternalServer, "falha")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrShiftRequired)
	})

	t.Run("Usa o fallback para erros genéricos", func(t *testing.T) {
		rec := httptest.NewRecorder()

		WriteFromError(rec, errors.New("boom"), ErrDatabaseOperation, "falha")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrDatabaseOperation)
	})
}
