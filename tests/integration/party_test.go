//go:build integration

package integration

import (
	"context"
	"testing"

	partnerapp "github.com/erp/reseller/internal/application/partner"
	"github.com/erp/reseller/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyService_PrincipalRateRoundTrip(t *testing.T) {
	tdb := NewTestDB(t)
	svc := partnerapp.NewPartyService(persistence.NewGormPartyRepository(tdb.DB))
	ctx := context.Background()
	tenantID := uuid.New()

	tests := []struct {
		code string
		rate string
	}{
		{"PR-HIGH", "1500"},
		{"PR-NEG", "-2500"},
		{"PR-FINE", "12.3456789"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			created, err := svc.Create(ctx, tenantID, partnerapp.CreatePartyRequest{
				Code: tt.code, Name: "Principal " + tt.code, IsPrincipal: true, CommissionRate: &rate,
			})
			require.NoError(t, err)

			got, err := svc.GetByID(ctx, tenantID, created.ID)
			require.NoError(t, err)
			assert.True(t, got.CommissionRate.Equal(rate), "got %s, want %s", got.CommissionRate, rate)
		})
	}
}
