package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize é o tamanho da chave em bytes (256 bits)
	KeySize = chacha20poly1305.KeySize
	// tagSize é o tamanho do tag de autenticação em bytes (128 bits)
	tagSize = chacha20poly1305.Overhead
	// nonceSize é o tamanho do nonce em bytes (96 bits)
	nonceSize = chacha20poly1305.NonceSize

	separator = ":"
)

var (
	ErrMissingKey = errors.New("vault key is required in production")
	ErrInvalidKey = errors.New("vault key must be 64 hex characters")
)

// Cipher cifra e decifra segredos guardados no banco
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
}

type Vault struct {
	aead cipher.AEAD
}

// New cria o cofre a partir de uma chave em hex.
// Sem chave, gera uma chave temporária fora de produção e falha em produção.
func New(hexKey string, production bool) (*Vault, error) {
	var key []byte

	if hexKey == "" {
		if production {
			return nil, ErrMissingKey
		}

		key = make([]byte, KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("erro ao gerar chave temporária: %w", err)
		}

		logrus.Warn("VAULT_KEY não configurada: usando chave temporária, tokens cifrados não sobreviverão a um restart")
	} else {
		decoded, err := hex.DecodeString(strings.TrimSpace(hexKey))
		if err != nil || len(decoded) != KeySize {
			return nil, ErrInvalidKey
		}
		key = decoded
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar cifra: %w", err)
	}

	return &Vault{aead: aead}, nil
}

// Encrypt gera hex(nonce):hex(ciphertext):hex(tag) com um nonce aleatório novo a cada chamada
func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		hex.EncodeToString(nonce),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag),
	}, separator), nil
}

// Decrypt valida e abre um blob. Qualquer problema retorna domain.ErrDecryption.
func (v *Vault) Decrypt(blob string) (string, error) {
	parts := strings.Split(blob, separator)
	if len(parts) != 3 {
		return "", domain.ErrDecryption
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return "", domain.ErrDecryption
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", domain.ErrDecryption
	}

	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != tagSize {
		return "", domain.ErrDecryption
	}

	plaintext, err := v.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", domain.ErrDecryption
	}

	return string(plaintext), nil
}
