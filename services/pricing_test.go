package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pandukusuma/qr-order-app/models"
)

func intPtr(v int) *int { return &v }

func TestComputeLineTotal(t *testing.T) {
	menu := models.Menu{ID: 1, Name: "Nasi Goreng Spesial", Price: 38000}
	options := []models.OptionItem{
		{ID: 10, Label: "Extra Telur", ExtraPrice: 5000},
		{ID: 11, Label: "Extra Pedas", ExtraPrice: 0},
		{ID: 12, Label: "Extra Ayam", ExtraPrice: 8000},
	}

	t.Run("harga dasar tanpa option", func(t *testing.T) {
		total := ComputeLineTotal(menu, 1, nil, options)
		assert.Equal(t, 38000.0, total)
	})

	t.Run("harga plus option dikali quantity", func(t *testing.T) {
		// (38000 + 5000) x 2 = 86000
		total := ComputeLineTotal(menu, 2, []uint{10}, options)
		assert.Equal(t, 86000.0, total)
	})

	t.Run("beberapa option dijumlahkan", func(t *testing.T) {
		total := ComputeLineTotal(menu, 1, []uint{10, 12}, options)
		assert.Equal(t, 51000.0, total)
	})

	t.Run("option id tidak dikenal dihitung nol", func(t *testing.T) {
		total := ComputeLineTotal(menu, 2, []uint{10, 999}, options)
		assert.Equal(t, 86000.0, total)
	})
}

func TestResolveOptionLabels(t *testing.T) {
	options := []models.OptionItem{
		{ID: 10, Label: "Extra Telur"},
		{ID: 11, Label: "Extra Pedas"},
	}

	labels := ResolveOptionLabels([]uint{11, 10, 999}, options)
	assert.Equal(t, []string{"Extra Pedas", "Extra Telur"}, labels)

	assert.Nil(t, ResolveOptionLabels(nil, options))
}

func TestValidateSelections(t *testing.T) {
	single := models.OptionGroup{
		Name:          "Ukuran",
		SelectionType: models.SelectionSingle,
		IsRequired:    true,
		OptionItems: []models.OptionItem{
			{ID: 1, Label: "Regular"},
			{ID: 2, Label: "Large"},
		},
	}
	multiple := models.OptionGroup{
		Name:          "Topping",
		SelectionType: models.SelectionMultiple,
		IsRequired:    true,
		MinSelect:     intPtr(1),
		MaxSelect:     intPtr(2),
		OptionItems: []models.OptionItem{
			{ID: 3, Label: "Keju"},
			{ID: 4, Label: "Sosis"},
			{ID: 5, Label: "Jamur"},
		},
	}

	t.Run("pilihan valid", func(t *testing.T) {
		err := ValidateSelections([]models.OptionGroup{single, multiple}, []uint{1, 3, 4})
		assert.NoError(t, err)
	})

	t.Run("single required tanpa pilihan", func(t *testing.T) {
		err := ValidateSelections([]models.OptionGroup{single}, nil)
		assert.Error(t, err)
	})

	t.Run("single dengan dua pilihan", func(t *testing.T) {
		err := ValidateSelections([]models.OptionGroup{single}, []uint{1, 2})
		assert.Error(t, err)
	})

	t.Run("multiple melewati max", func(t *testing.T) {
		err := ValidateSelections([]models.OptionGroup{single, multiple}, []uint{1, 3, 4, 5})
		assert.Error(t, err)
	})

	t.Run("multiple kurang dari min", func(t *testing.T) {
		err := ValidateSelections([]models.OptionGroup{single, multiple}, []uint{1})
		assert.Error(t, err)
	})

	t.Run("multiple opsional boleh kosong", func(t *testing.T) {
		optional := multiple
		optional.IsRequired = false
		err := ValidateSelections([]models.OptionGroup{optional}, nil)
		assert.NoError(t, err)
	})
}
