package contracts

import (
	"vitalecosystem/models"
)

// Project renseigne etat_contrat, debut_contrat et fin_contrat du client à
// partir de ses contrats: le contrat Actif ou Pause s'il existe, sinon le
// dernier contrat terminé, sinon rien.
func (b *Book) Project(c models.Client) models.Client {
	c.EtatContrat, c.DebutContrat, c.FinContrat = nil, nil, nil

	src, ok := b.Governing(c.ID)
	if !ok {
		src, ok = b.lastTerminated(c.ID)
	}
	if !ok {
		return c
	}
	etat, debut, fin := src.Etat, src.DateDebut, src.DateFin
	c.EtatContrat, c.DebutContrat, c.FinContrat = &etat, &debut, &fin
	return c
}

func (b *Book) lastTerminated(clientID int) (models.Contract, bool) {
	var (
		last  models.Contract
		found bool
	)
	for _, c := range b.byClient[clientID] {
		if c.Etat != models.ContractTerminated {
			continue
		}
		if !found || c.DateFin.After(last.DateFin) || (c.DateFin.Equal(last.DateFin.Time) && c.ID > last.ID) {
			last, found = c, true
		}
	}
	return last, found
}
