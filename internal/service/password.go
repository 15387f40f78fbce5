package service

import "golang.org/x/crypto/bcrypt"

// Factor de trabajo fijo para bcrypt.
const passwordCost = 10

// HashPassword genera un hash salteado del password en claro. El string
// vacío es un password válido; el costo es deliberadamente caro.
func HashPassword(plaintext string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// VerifyPassword devuelve true si plaintext produjo hash. Un hash con
// formato inválido cuenta como no coincidencia, nunca como error.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
