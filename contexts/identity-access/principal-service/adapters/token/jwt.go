package token

import (
	"context"
	"fmt"
	"log/slog"

	"orbit/contexts/identity-access/principal-service/domain/entities"
	domainerrors "orbit/contexts/identity-access/principal-service/domain/errors"
	"orbit/contexts/identity-access/principal-service/domain/services"

	"github.com/golang-jwt/jwt/v5"
)

// Parser verifies HMAC-signed bearer tokens and resolves their claims into a
// principal. Signature, expiry, and issuer checks happen here; claim
// interpretation is delegated to the domain.
type Parser struct {
	Secret []byte
	Issuer string
	Logger *slog.Logger
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Superuser         bool     `json:"superuser"`
	Roles             []string `json:"roles"`
	OrgPublicAccess   bool     `json:"org_public_access"`
	SpacePublicAccess bool     `json:"space_public_access"`
}

func (p Parser) Authenticate(_ context.Context, raw string) (entities.Principal, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if p.Issuer != "" {
		options = append(options, jwt.WithIssuer(p.Issuer))
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return p.Secret, nil
	}, options...)
	if err != nil {
		return entities.Principal{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return entities.Principal{}, fmt.Errorf("missing subject: %w", domainerrors.ErrInvalidToken)
	}

	principal, unresolved := services.ResolvePrincipal(services.Claims{
		Subject:           claims.Subject,
		Superuser:         claims.Superuser,
		Roles:             claims.Roles,
		OrgPublicAccess:   claims.OrgPublicAccess,
		SpacePublicAccess: claims.SpacePublicAccess,
	})
	if len(unresolved) > 0 && p.Logger != nil {
		p.Logger.Warn("token carried unresolvable role names",
			"event", "principal_roles_unresolved",
			"module", "identity-access/principal-service",
			"layer", "adapter",
			"subject", claims.Subject,
			"roles", unresolved,
		)
	}
	return principal, nil
}
