package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

const minSecretLen = 32

// CreateToken は subject から署名付きトークンを生成する
func CreateToken(subject string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(subject))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(subject)) + "." + sig
}

// VerifyToken はトークンを検証し subject を返す
func VerifyToken(token string, secret []byte) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid token format")
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", errors.New("invalid signature")
	}
	return string(payload), nil
}

// SecretBytes は文字列から署名用のバイト列を生成する（最低32バイト）
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
