package services

import (
	"fmt"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// ComputeLineTotal menghitung total satu baris keranjang:
// (harga dasar menu + jumlah extra price option terpilih) x quantity.
// ID option yang tidak ditemukan dihitung 0 -- ini perilaku yang disengaja,
// bukan bug; lihat catatan di DESIGN.md.
func ComputeLineTotal(menu models.Menu, quantity int, selectedOptionIDs []uint, options []models.OptionItem) float64 {
	byID := make(map[uint]models.OptionItem, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	extra := 0.0
	for _, id := range selectedOptionIDs {
		opt, ok := byID[id]
		if !ok {
			if utils.InfoLogger != nil {
				utils.InfoLogger.Debugf("option id %d tidak ditemukan saat pricing menu %d, dihitung 0", id, menu.ID)
			}
			continue
		}
		extra += opt.ExtraPrice
	}

	return (menu.Price + extra) * float64(quantity)
}

// ResolveOptionLabels mengembalikan label option terpilih yang berhasil
// di-resolve, urut sesuai pilihan. ID yang tidak dikenal dilewati.
func ResolveOptionLabels(selectedOptionIDs []uint, options []models.OptionItem) []string {
	byID := make(map[uint]models.OptionItem, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}

	var labels []string
	for _, id := range selectedOptionIDs {
		if opt, ok := byID[id]; ok {
			labels = append(labels, opt.Label)
		}
	}
	return labels
}

// ValidateSelections memeriksa invariant OptionGroup sebelum sebuah baris
// boleh masuk keranjang:
//   - group single + required  => tepat satu item terpilih dari group itu
//   - group multiple + required => jumlah terpilih memenuhi min/max bila ada
func ValidateSelections(groups []models.OptionGroup, selectedOptionIDs []uint) error {
	selected := make(map[uint]bool, len(selectedOptionIDs))
	for _, id := range selectedOptionIDs {
		selected[id] = true
	}

	for _, group := range groups {
		count := 0
		for _, item := range group.OptionItems {
			if selected[item.ID] {
				count++
			}
		}

		switch group.SelectionType {
		case models.SelectionSingle:
			if group.IsRequired && count != 1 {
				return fmt.Errorf("pilih satu opsi untuk %s", group.Name)
			}
			if count > 1 {
				return fmt.Errorf("%s hanya boleh satu pilihan", group.Name)
			}
		case models.SelectionMultiple:
			if !group.IsRequired && count == 0 {
				continue
			}
			if group.MinSelect != nil && count < *group.MinSelect {
				return fmt.Errorf("pilih minimal %d opsi untuk %s", *group.MinSelect, group.Name)
			}
			if group.MaxSelect != nil && count > *group.MaxSelect {
				return fmt.Errorf("pilih maksimal %d opsi untuk %s", *group.MaxSelect, group.Name)
			}
			if group.IsRequired && group.MinSelect == nil && count == 0 {
				return fmt.Errorf("pilih opsi untuk %s", group.Name)
			}
		}
	}

	return nil
}
