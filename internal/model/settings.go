package model

// CompanyInfo holds the issuer identity printed on invoices.
type CompanyInfo struct {
	Name      string `json:"name"`
	RNC       string `json:"rnc"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Website   string `json:"website"`
	NCFPrefix string `json:"ncfPrefix"`
}

// FiscalSettings are Dominican fiscal configuration values (NCF numbering,
// ITBIS). Configuration only; invoice math uses TaxRate.
type FiscalSettings struct {
	EnableNCF         bool    `json:"enableNCF"`
	AutomaticITBIS    bool    `json:"automaticITBIS"`
	ITBISRate         float64 `json:"itbisRate" validate:"gte=0,lte=100"`
	IncludeTaxInPrice bool    `json:"includeTaxInPrice"`
}

type Settings struct {
	Company CompanyInfo    `json:"company"`
	Fiscal  FiscalSettings `json:"fiscal"`
}

// DefaultSettings returns the seed configuration used when nothing has been
// persisted yet.
func DefaultSettings() Settings {
	return Settings{
		Company: CompanyInfo{
			Name:      "Mi Empresa",
			RNC:       "000-0000000-0",
			Address:   "Calle Principal #123, Santo Domingo, República Dominicana",
			Phone:     "(809) 555-1234",
			Email:     "contacto@miempresa.com",
			Website:   "www.miempresa.com",
			NCFPrefix: "B01",
		},
		Fiscal: FiscalSettings{
			EnableNCF:         true,
			AutomaticITBIS:    true,
			ITBISRate:         18,
			IncludeTaxInPrice: false,
		},
	}
}
