// Package billing regroupe les calculs de facturation. Aucune fonction ici
// n'accède au stockage.
package billing

import (
	"fmt"

	"vitalecosystem/models"
)

// Line est une ligne facturée: quantité × prix unitaire.
type Line struct {
	Qte  float64
	Prix float64
}

// ExcessWeight renvoie le poids collecté au-delà du forfait, jamais négatif.
func ExcessWeight(poidsCollecte, poidsForfait int) int {
	return max(0, poidsCollecte-poidsForfait)
}

// DeliveryNoteTotal calcule le montant d'un bon de passage. Les services ne
// portent pas de prix et n'y contribuent pas.
func DeliveryNoteTotal(lines []Line, excessWeight, prixExcesPoids float64) float64 {
	return linesTotal(lines) + excessWeight*prixExcesPoids
}

// PurchaseTotal calcule le montant total d'un bon d'achat.
func PurchaseTotal(lines []Line) float64 {
	return linesTotal(lines)
}

func linesTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Qte * l.Prix
	}
	return total
}

// ParseNumber lit une quantité ou un prix saisi librement; une saisie vide ou
// invalide vaut 0.
func ParseNumber(s string) float64 {
	return models.ParseNumber(s)
}

// tolérance sur les comparaisons de montants en virgule flottante
const epsilon = 1e-9

// OverpaymentError signale des versements supérieurs au montant du bon.
type OverpaymentError struct {
	Total float64
	Paid  float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("le total des versements (%.2f DA) dépasse le montant total (%.2f DA)", e.Paid, e.Total)
}

// CheckVersements vérifie que Σ amounts ≤ total.
func CheckVersements(total float64, amounts ...float64) error {
	var paid float64
	for _, a := range amounts {
		paid += a
	}
	if paid > total+epsilon {
		return &OverpaymentError{Total: total, Paid: paid}
	}
	return nil
}

// NoteLines convertit les consommables d'un bon de passage.
func NoteLines(products []models.DeliveryNoteProduct) []Line {
	lines := make([]Line, 0, len(products))
	for _, p := range products {
		lines = append(lines, Line{Qte: p.Qte.Float(), Prix: p.Prix.Float()})
	}
	return lines
}

// PurchaseLines convertit les produits d'un bon d'achat; un prix absent vaut 0.
func PurchaseLines(products []models.BonAchatProduct) []Line {
	lines := make([]Line, 0, len(products))
	for _, p := range products {
		var prix float64
		if p.Prix != nil {
			prix = p.Prix.Float()
		}
		lines = append(lines, Line{Qte: float64(p.Qte), Prix: prix})
	}
	return lines
}
