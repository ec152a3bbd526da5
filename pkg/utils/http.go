package utils

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// QueryInt lê um inteiro da query string, usando o valor padrão quando ausente ou inválido
func QueryInt(r *http.Request, key string, def int) int {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	return n
}

func QueryString(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

func QueryBool(r *http.Request, key string) *bool {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

func QueryDate(r *http.Request, key string) (*time.Time, error) {
	return ParseDate(strings.TrimSpace(r.URL.Query().Get(key)))
}
