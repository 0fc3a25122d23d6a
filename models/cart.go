package models

// CartLine adalah baris keranjang milik satu sesi browsing. Ephemeral:
// tidak pernah disimpan ke database sampai checkout.
type CartLine struct {
	ClientID      string   `json:"client_id"`
	MenuID        uint     `json:"menu_id"`
	Quantity      int      `json:"quantity"`
	OptionItemIDs []uint   `json:"option_item_ids"`
	Note          string   `json:"note"`
	DisplayName   string   `json:"display_name"`
	OptionLabels  []string `json:"option_labels"`
	// DisplayPrice dihitung penuh saat baris dimasukkan dan tidak pernah
	// dihitung ulang; edit harga menu setelahnya tidak mengubah baris lama.
	DisplayPrice float64 `json:"display_price"`
}

type CartSummary struct {
	Items int     `json:"items"`
	Total float64 `json:"total"`
}
