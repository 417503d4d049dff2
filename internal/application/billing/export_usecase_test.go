package billing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/export"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// pagedCampaignRepo simula un backend con el resultado partido en páginas:
// cada llamada devuelve la página correspondiente al cursor recibido y el
// cursor de la siguiente. Registra los cursores recibidos para verificar que
// el recorrido de exportación avanza estrictamente en secuencia.
type pagedCampaignRepo struct {
	pages       map[string]pageResult
	seenCursors []string
}

type pageResult struct {
	items []*entity.Campaign
	next  string
}

func (r *pagedCampaignRepo) Create(*entity.Campaign) error { panic("no usado") }
func (r *pagedCampaignRepo) GetByID(string, string) (*entity.Campaign, error) {
	panic("no usado")
}
func (r *pagedCampaignRepo) List(_ string, q repository.ListQuery) ([]*entity.Campaign, string, error) {
	r.seenCursors = append(r.seenCursors, q.Cursor)
	page := r.pages[q.Cursor]
	return page.items, page.next, nil
}
func (r *pagedCampaignRepo) Update(*entity.Campaign) error { panic("no usado") }
func (r *pagedCampaignRepo) Delete(string, string) error   { panic("no usado") }

func campaignNamed(name string) *entity.Campaign {
	return &entity.Campaign{
		Name:      name,
		Status:    entity.CampaignStatusActive,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newExportUC(campaignRepo repository.CampaignRepository) *billing.ExportUseCase {
	return billing.NewExportUseCase(campaignRepo, nil, nil, nil, export.NewCSVExporter(""))
}

func TestExportCampaigns_RecorreTodasLasPaginasEnSecuencia(t *testing.T) {
	repo := &pagedCampaignRepo{pages: map[string]pageResult{
		"":   {items: []*entity.Campaign{campaignNamed("Alpha"), campaignNamed("Beta")}, next: "cur-1"},
		"cur-1": {items: []*entity.Campaign{campaignNamed("Gamma"), campaignNamed("Delta")}, next: "cur-2"},
		"cur-2": {items: []*entity.Campaign{campaignNamed("Epsilon")}, next: ""},
	}}

	artifact, err := newExportUC(repo).ExportCampaigns("co-1", dto.ListRequest{PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, "campaigns", artifact.Filename)
	assert.Equal(t, []string{"", "cur-1", "cur-2"}, repo.seenCursors,
		"el recorrido avanza página a página con el cursor de la anterior")

	lines := strings.Split(string(artifact.Content), "\n")
	require.Len(t, lines, 6, "encabezado + 5 campañas")
	assert.Equal(t, "Name,Status,Start Date,End Date,Created At", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Alpha,active,1/1/2026,6/30/2026"))
	assert.True(t, strings.HasPrefix(lines[5], "Epsilon,"))
}

func TestExportCampaigns_SinRegistrosNoProduceArtefacto(t *testing.T) {
	repo := &pagedCampaignRepo{pages: map[string]pageResult{
		"": {items: nil, next: ""},
	}}

	artifact, err := newExportUC(repo).ExportCampaigns("co-1", dto.ListRequest{PageSize: 20})

	require.NoError(t, err)
	assert.Empty(t, artifact.Content, "exportar una tabla vacía es un no-op sin efecto")
}
