package delivery

// Profile describes the header layout of a supplier delivery sheet.
// Adding a supplier format is adding a Profile to the profiles slice.
type Profile struct {
	Name    string
	NameCol string
	QtyCol  string
	CostCol string // optional
	SaleCol string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.QtyCol}
}

// profiles is tried in order. Header names are compared lowercased.
var profiles = []Profile{
	{
		Name:    "fr",
		NameCol: "produit",
		QtyCol:  "quantité",
		CostCol: "prix achat",
		SaleCol: "prix vente",
	},
	{
		Name:    "fr-bordereau",
		NameCol: "désignation",
		QtyCol:  "qté",
		CostCol: "pu",
	},
	{
		Name:    "en",
		NameCol: "product",
		QtyCol:  "quantity",
		CostCol: "cost price",
		SaleCol: "sale price",
	},
}
