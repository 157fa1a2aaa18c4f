package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("dailymeet-admin-secret")

// Init imzalama anahtarını yapılandırmadan ayarlar.
func Init(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// GenerateAdminToken parola doğrulamasından sonra verilen kısa ömürlü token.
func GenerateAdminToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	return token.SignedString(jwtSecret)
}

func ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}
