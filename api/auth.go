package api

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/utils"
)

// Claims of the access tokens issued by the authentication provider, signed with HS256
type Claims struct {
	jwt.RegisteredClaims
	OrganizationId string `json:"org_id"`
}

type Authentication struct {
	signingKey []byte
}

func NewAuthentication(signingKey string) Authentication {
	return Authentication{signingKey: []byte(signingKey)}
}

func ParseAuthorizationBearerHeader(header string) (string, error) {
	if header == "" {
		return "", errors.Wrap(models.UnAuthorizedError, "missing Authorization header")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.Wrap(models.UnAuthorizedError, "malformed Authorization header, expect 'Bearer <token>'")
	}
	return strings.TrimSpace(token), nil
}

func (a Authentication) ValidateToken(tokenString string) (models.Credentials, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return a.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return models.Credentials{}, errors.Join(models.UnAuthorizedError, err)
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "token subject is not a user id")
	}
	organizationId, err := uuid.Parse(claims.OrganizationId)
	if err != nil {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "token does not carry an organization")
	}
	return models.Credentials{UserId: userId, OrganizationId: organizationId}, nil
}

// Middleware stores the credentials, and a logger enriched with them, in the request context
func (a Authentication) Middleware(c *gin.Context) {
	ctx := c.Request.Context()
	token, err := ParseAuthorizationBearerHeader(c.GetHeader("Authorization"))
	if presentError(ctx, c, err) {
		return
	}
	creds, err := a.ValidateToken(token)
	if presentError(ctx, c, err) {
		return
	}

	c.Request = c.Request.WithContext(utils.StoreCredentialsInContext(ctx, creds))
	c.Next()
}
