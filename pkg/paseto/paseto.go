package paseto

import (
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tokenDuration = 24 * time.Hour

// Claims is the identity resolved from a bearer token. EmployeeID is the
// zero ObjectID when the account has no linked employee record.
type Claims struct {
	UserID     primitive.ObjectID `json:"user_id"`
	Email      string             `json:"email"`
	Role       string             `json:"role"`
	EmployeeID primitive.ObjectID `json:"employee_id"`
}

// Maker issues and verifies PASETO v2 local tokens. The symmetric key is
// injected at construction; there is no package-level key state.
type Maker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

func NewMaker(symmetricKey []byte) (*Maker, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("paseto v2 local requires a 32-byte key, got %d bytes", len(symmetricKey))
	}
	return &Maker{
		paseto:       paseto.NewV2(),
		symmetricKey: symmetricKey,
	}, nil
}

func (m *Maker) GenerateToken(claims *Claims) (string, error) {
	now := time.Now()

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: now.Add(tokenDuration),
		NotBefore:  now,
	}

	if claims.UserID.IsZero() {
		return "", fmt.Errorf("user_id claim is required")
	}
	token.Set("user_id", claims.UserID.Hex())
	token.Set("email", claims.Email)
	token.Set("role", claims.Role)
	if !claims.EmployeeID.IsZero() {
		token.Set("employee_id", claims.EmployeeID.Hex())
	}

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*Claims, error) {
	var token paseto.JSONToken
	var footer string

	if err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(token.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id claim: %w", err)
	}

	claims := &Claims{
		UserID: userID,
		Email:  token.Get("email"),
		Role:   token.Get("role"),
	}

	if hex := token.Get("employee_id"); hex != "" {
		employeeID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid employee_id claim: %w", err)
		}
		claims.EmployeeID = employeeID
	}

	return claims, nil
}
