package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	codeCharacters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateCode gera códigos legíveis como V-7KD2M9QX para vendas e C-4TR8PZ para turnos de caixa
func GenerateCode(prefix string, size int) (string, error) {
	code, err := gonanoid.Generate(codeCharacters, size)
	if err != nil {
		return "", err
	}

	if prefix == "" {
		return code, nil
	}

	return prefix + "-" + code, nil
}

func NewUUID() string {
	return uuid.NewString()
}
