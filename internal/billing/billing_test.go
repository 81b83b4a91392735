package billing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"vitalecosystem/internal/billing"
	"vitalecosystem/models"
)

func TestExcessWeight(t *testing.T) {
	tests := []struct {
		name              string
		collecte, forfait int
		want              int
	}{
		{"above allowance", 120, 100, 20},
		{"exactly allowance", 100, 100, 0},
		{"below allowance", 80, 100, 0},
		{"no allowance", 15, 0, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, billing.ExcessWeight(tt.collecte, tt.forfait))
		})
	}
}

func TestExcessWeight_Property(t *testing.T) {
	for forfait := 0; forfait <= 50; forfait += 5 {
		for collecte := 0; collecte <= 100; collecte += 7 {
			got := billing.ExcessWeight(collecte, forfait)
			if collecte >= forfait {
				require.Equal(t, collecte-forfait, got)
			} else {
				require.Zero(t, got)
			}
		}
	}
}

func TestDeliveryNoteTotal(t *testing.T) {
	total := billing.DeliveryNoteTotal([]billing.Line{{Qte: 10, Prix: 5}}, 3, 20)
	require.Equal(t, 110.0, total)
}

func TestDeliveryNoteTotal_ContractScenario(t *testing.T) {
	excess := billing.ExcessWeight(120, 100)
	require.Equal(t, 20, excess)

	total := billing.DeliveryNoteTotal([]billing.Line{{Qte: 2, Prix: 30}}, float64(excess), 15)
	require.Equal(t, 360.0, total)
}

func TestDeliveryNoteTotal_NoLines(t *testing.T) {
	require.Equal(t, 0.0, billing.DeliveryNoteTotal(nil, 0, 15))
	require.Equal(t, 45.0, billing.DeliveryNoteTotal(nil, 3, 15))
}

func TestParseNumber(t *testing.T) {
	require.Equal(t, 12.5, billing.ParseNumber("12,5"))
	require.Equal(t, 3.0, billing.ParseNumber(" 3 "))
	require.Equal(t, 1500.0, billing.ParseNumber("1 500"))
	require.Equal(t, 0.0, billing.ParseNumber(""))
	require.Equal(t, 0.0, billing.ParseNumber("abc"))
	require.Equal(t, -2.0, billing.ParseNumber("-2"))
}

func TestPurchaseLines_MissingPrice(t *testing.T) {
	lines := billing.PurchaseLines([]models.BonAchatProduct{
		{Produit: "Gants", Qte: 10, Prix: models.NumberPtr(2.5)},
		{Produit: "Sacs", Qte: 4},
	})
	require.Equal(t, 25.0, billing.PurchaseTotal(lines))
}

func TestCheckVersements(t *testing.T) {
	require.NoError(t, billing.CheckVersements(100, 40, 60))
	require.NoError(t, billing.CheckVersements(0.3, 0.1, 0.2))
	require.NoError(t, billing.CheckVersements(100))

	err := billing.CheckVersements(100, 60, 50)
	var over *billing.OverpaymentError
	require.True(t, errors.As(err, &over))
	require.Equal(t, 110.0, over.Paid)
	require.Equal(t, 100.0, over.Total)
}
