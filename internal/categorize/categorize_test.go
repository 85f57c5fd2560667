package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
)

func TestCategorizeKnownActivities(t *testing.T) {
	c := New(nil)

	cases := []struct {
		description string
		want        constants.Category
	}{
		{"Restaurantes e similares", constants.Food},
		{"Lanchonetes, casas de chá, de sucos e similares", constants.Food},
		{"Transporte rodoviário de táxi", constants.Transport},
		{"Pousadas e hospedagem", constants.Lodging},
		{"Comércio varejista de medicamentos", constants.Health},
		{"Comércio varejista de artigos do vestuário", constants.Apparel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Categorize(tc.description), tc.description)
	}
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	c := New(nil)

	assert.Equal(t, constants.Food, c.Categorize("RESTAURANTE E LANCHONETE"))
}

func TestCategorizeEmptyOrUnknown(t *testing.T) {
	c := New(nil)

	assert.Equal(t, constants.Other, c.Categorize(""))
	assert.Equal(t, constants.Other, c.Categorize("Atividades de apoio administrativo"))
}

func TestCategorizeCollisionFollowsTableOrder(t *testing.T) {
	c := New(nil)
	// "restaurante" (Food) and "estacionamento" (Transport) both match; Food
	// is declared first in the default table.
	assert.Equal(t, constants.Food, c.Categorize("restaurante com estacionamento"))
}

func TestCategorizeInjectedTable(t *testing.T) {
	table := []constants.CategoryKeywords{
		{Category: constants.Technology, Keywords: []string{"widget"}},
		{Category: constants.Services, Keywords: []string{"widget", "coisa"}},
	}
	c := New(table)

	assert.Equal(t, constants.Technology, c.Categorize("loja de widgets"))
	assert.Equal(t, constants.Services, c.Categorize("qualquer coisa"))
	assert.Equal(t, constants.Other, c.Categorize("sem correspondência"))
}
