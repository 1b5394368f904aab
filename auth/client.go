package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	jwt "github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// TokenData identity extracted from a verified token
type TokenData struct {
	UserID   string
	IsServer bool
}

// ClientInterface interface that we will implement and mock
type ClientInterface interface {
	Authenticate(req *http.Request) *TokenData
}

// Client holds the state of the Auth Client
type Client struct {
	authSecret     string
	tokenValidator *validator.Validator
	logger         *logrus.Logger
}

// sessionClaims carried by the first-party HMAC session token
type sessionClaims struct {
	jwt.StandardClaims
	IsServer bool `json:"srv"`
}

// CustomClaims contains custom data we want from the bearer token.
type CustomClaims struct {
	Scope string `json:"scope"`
}

// Nothing further to validate, scopes do not matter for data access
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

func setupBearerValidator(domain string, audience string) (*validator.Validator, error) {
	// target audience is used to verify the token was issued for a specific
	// domain or url
	targetAudience := []string{}
	if audience != "" {
		targetAudience = []string{audience}
	}
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}
	keyProvider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	return validator.New(
		keyProvider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		targetAudience,
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// NewClient creates a new Auth Client. The bearer token path is only enabled
// when an issuer domain is configured.
func NewClient(authSecret string, auth0Domain string, auth0Audience string, logger *logrus.Logger) (*Client, error) {
	client := &Client{
		authSecret: authSecret,
		logger:     logger,
	}
	if auth0Domain != "" {
		tokenValidator, err := setupBearerValidator(auth0Domain, auth0Audience)
		if err != nil {
			return nil, err
		}
		client.tokenValidator = tokenValidator
	}
	return client, nil
}

// Authenticate the incoming request using either the x-healthmate-session
// token or the authorization Bearer token provided by OAuth
func (client *Client) Authenticate(req *http.Request) *TokenData {
	if sessionToken := req.Header.Get("x-healthmate-session-token"); sessionToken != "" {
		tokenData, err := client.verifySessionToken(sessionToken)
		if err != nil {
			client.logger.Print("Error decoding session token")
			return nil
		}
		return tokenData
	}

	if client.tokenValidator == nil {
		return nil
	}
	rawToken, err := jwtmiddleware.AuthHeaderTokenExtractor(req)
	if err != nil {
		client.logger.Print("Error decoding bearer token")
		return nil
	}
	parsed, err := client.tokenValidator.ValidateToken(req.Context(), rawToken)
	if err != nil {
		client.logger.Print("Error decoding bearer token")
		return nil
	}
	claims := parsed.(*validator.ValidatedClaims)
	subject := claims.RegisteredClaims.Subject
	// Auth0 subjects look like "<connection>|<userID>"
	if parts := strings.SplitN(subject, "|", 2); len(parts) == 2 {
		subject = parts[1]
	}
	return &TokenData{UserID: subject, IsServer: false}
}

func (client *Client) verifySessionToken(sessionToken string) (*TokenData, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(sessionToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(client.authSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token")
	}
	return &TokenData{UserID: claims.Subject, IsServer: claims.IsServer}, nil
}
