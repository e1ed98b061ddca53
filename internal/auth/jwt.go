package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// Claims carried by every access token. The household ID scopes all data
// access, so it travels in the token rather than being looked up per request.
type Claims struct {
	UserID      uuid.UUID
	HouseholdID uuid.UUID
	Email       string
}

func GenerateToken(user *User) (string, error) {
	if user.ID == uuid.Nil {
		return "", errors.New("empty userID passed to GenerateToken")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"userID":      user.ID.String(),
		"householdID": user.HouseholdID.String(),
		"email":       user.Email,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	rawUser, _ := mapClaims["userID"].(string)
	rawHousehold, _ := mapClaims["householdID"].(string)
	email, _ := mapClaims["email"].(string)

	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return nil, errors.New("invalid userID claim")
	}
	householdID, err := uuid.Parse(rawHousehold)
	if err != nil {
		return nil, errors.New("invalid householdID claim")
	}

	return &Claims{UserID: userID, HouseholdID: householdID, Email: email}, nil
}
