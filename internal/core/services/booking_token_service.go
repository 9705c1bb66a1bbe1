package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// bookingTokenClaims is the JWT payload of a public booking link.
type bookingTokenClaims struct {
	OrgID string `json:"orgID"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// bookingTokenService signs and validates single-use booking tokens. The
// single-use property comes from the used-token table, not the JWT itself:
// marking a token used is an insert that conflicts on the second attempt.
type bookingTokenService struct {
	tokenRepo portsrepo.BookingTokenRepositoryFacade
	secret    []byte
	clk       clock.Clock
}

// NewBookingTokenService creates a new BookingTokenService.
func NewBookingTokenService(tokenRepo portsrepo.BookingTokenRepositoryFacade, secret string, clk clock.Clock) portssvc.BookingTokenSvcFacade {
	return &bookingTokenService{tokenRepo: tokenRepo, secret: []byte(secret), clk: clk}
}

var _ portssvc.BookingTokenSvcFacade = (*bookingTokenService)(nil)

func (s *bookingTokenService) GenerateToken(ctx context.Context, orgID string, reservationID string, scope domain.BookingTokenScope, ttlHours int) (string, error) {
	if ttlHours <= 0 {
		return "", fmt.Errorf("%w: token ttl must be positive", apperrors.ErrValidation)
	}
	now := s.clk.Now()
	claims := bookingTokenClaims{
		OrgID: orgID,
		Scope: string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   reservationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing booking token: %w", err)
	}
	return signed, nil
}

func (s *bookingTokenService) ValidateToken(ctx context.Context, tokenString string, requiredScope domain.BookingTokenScope) (*domain.BookingTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &bookingTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clk.Now))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking token", apperrors.ErrForbidden)
	}
	claims, ok := token.Claims.(*bookingTokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid booking token", apperrors.ErrForbidden)
	}
	if domain.BookingTokenScope(claims.Scope) != requiredScope {
		return nil, fmt.Errorf("%w: token scope %s does not permit this action", apperrors.ErrForbidden, claims.Scope)
	}

	used, err := s.tokenRepo.IsTokenUsed(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("checking token use: %w", err)
	}
	if used {
		return nil, fmt.Errorf("%w: booking token already used", apperrors.ErrConflict)
	}

	return &domain.BookingTokenClaims{
		TokenID:       claims.ID,
		ReservationID: claims.Subject,
		OrgID:         claims.OrgID,
		Scope:         domain.BookingTokenScope(claims.Scope),
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}

func (s *bookingTokenService) MarkUsed(ctx context.Context, claims *domain.BookingTokenClaims) error {
	return s.tokenRepo.MarkTokenUsed(ctx, domain.BookingTokenUse{
		TokenID:       claims.TokenID,
		ReservationID: claims.ReservationID,
		UsedAt:        s.clk.Now(),
	})
}
