package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	TenantID string
	Email    string
	Nombre   string
}

// AccessTokenClaims represents the typed JWT presented by clients. The claim
// names match the tokens issued by the tenant identity service.
type AccessTokenClaims struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity for one request, decoded from the
// bearer token. It lives only as long as the request.
type Principal struct {
	TenantID string
	Email    string
	Nombre   string
}

// Principal converts the verified claims into the request-scoped identity.
func (c *AccessTokenClaims) Principal() Principal {
	return Principal{
		TenantID: c.TenantID,
		Email:    c.Email,
		Nombre:   c.Nombre,
	}
}
