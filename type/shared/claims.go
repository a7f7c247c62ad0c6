package shared

import "github.com/golang-jwt/jwt/v4"

const RoleAdmin = "admin"

// AdminClaims is the bearer token payload accepted on admin routes. The
// admin identity travels in RegisteredClaims.Subject.
type AdminClaims struct {
	Role *string `json:"role"`
	jwt.RegisteredClaims
}
