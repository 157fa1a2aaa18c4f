package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialChecker admin kimlik doğrulaması için takılabilir arayüz.
// Varsayılan implementasyon tek statik parola kullanır; ileride
// admin başına kimlik buraya eklenebilir.
type CredentialChecker interface {
	Check(token string) bool
}

// StaticPasscode yapılandırmadan gelen tek paylaşılan parolayı doğrular.
// Secret "$2" ile başlıyorsa bcrypt hash olarak karşılaştırılır.
type StaticPasscode struct {
	secret   string
	isBcrypt bool
}

func NewStaticPasscode(secret string) *StaticPasscode {
	return &StaticPasscode{
		secret:   secret,
		isBcrypt: strings.HasPrefix(secret, "$2"),
	}
}

func (s *StaticPasscode) Check(token string) bool {
	if s.secret == "" || token == "" {
		return false
	}
	if s.isBcrypt {
		return bcrypt.CompareHashAndPassword([]byte(s.secret), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.secret), []byte(token)) == 1
}
