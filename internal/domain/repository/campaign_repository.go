package repository

import "github.com/jhoicas/Pauta-api/internal/domain/entity"

// CampaignRepository define el puerto de persistencia para Campaign (DIP).
// List devuelve una página ordenada más el cursor de la página siguiente
// (vacío cuando no hay más resultados).
type CampaignRepository interface {
	Create(campaign *entity.Campaign) error
	GetByID(companyID, id string) (*entity.Campaign, error)
	List(companyID string, q ListQuery) ([]*entity.Campaign, string, error)
	Update(campaign *entity.Campaign) error
	Delete(companyID, id string) error
}
