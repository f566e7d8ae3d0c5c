package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// CreateSessionToken は ID から署名付きトークンを生成する
func CreateSessionToken(id string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(id)) + "." + sig
}

// VerifySessionToken はトークンを検証し ID を返す
func VerifySessionToken(token string, secret []byte) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid token format")
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", errors.New("empty token payload")
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", errors.New("invalid signature")
	}
	return string(payload), nil
}

const (
	sessionCookieName = "sakecatalog_session"
	adminCookieName   = "sakecatalog_admin"
	minSecretLen      = 32
)

// SessionCookieName は閲覧セッション（選択状態）のクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// AdminCookieName は管理者トークンのクッキー名
func AdminCookieName() string {
	return adminCookieName
}

// NewSessionID は新しい閲覧セッション ID を発行する
func NewSessionID() string {
	return uuid.NewString()
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する（最低32バイト）
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
