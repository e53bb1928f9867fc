package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 6
)

// GenerateID gera um id curto alfanumérico, usado como jti dos tokens
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
