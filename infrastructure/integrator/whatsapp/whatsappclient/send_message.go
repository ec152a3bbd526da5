package whatsappclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	whatsappdomain "github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/domain"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *WhatsAppClient) SendText(ctx context.Context, to, body string) (*whatsappdomain.SendMessageResponse, error) {
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, c.config.PhoneNumberID, "messages")

	payload, err := json.Marshal(whatsappdomain.TextMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             whatsappdomain.TextContent{Body: body},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a mensagem: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &whatsappdomain.APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, &apiErr.Response); err != nil {
			apiErr.Response.Error.Message = resp.Status
		}
		return nil, apiErr
	}

	var response whatsappdomain.SendMessageResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &response, nil
}
