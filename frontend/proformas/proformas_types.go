package proformas

// perPage is the fixed page size of the proforma listing.
const perPage = 10

// ItemInput is one editor line as posted by the client JS.
type ItemInput struct {
	Item           string  `json:"item"`
	Cantidad       float64 `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// ProformaInput is the create/update payload. Any client-supplied total
// is ignored; the server recomputes it from Items.
type ProformaInput struct {
	CotizacionNro string      `json:"cotizacion_nro"`
	Fecha         string      `json:"fecha"`
	Cliente       string      `json:"cliente"`
	IncluyeIGV    bool        `json:"incluye_igv"`
	Items         []ItemInput `json:"items"`
}

// StatusInput carries a status transition request.
type StatusInput struct {
	Status string `json:"status"`
}

// ItemRow is a line item as serialized in listings.
type ItemRow struct {
	ItemDescripcion string  `json:"item_descripcion"`
	Cantidad        float64 `json:"cantidad"`
	PrecioUnitario  float64 `json:"precio_unitario"`
}

// ProformaRow is one listing entry, annotated with the author display
// name and its full item set.
type ProformaRow struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	CotizacionNro string    `json:"cotizacion_nro"`
	Fecha         string    `json:"fecha"`
	Cliente       string    `json:"cliente"`
	IncluyeIGV    bool      `json:"incluye_igv"`
	MontoTotal    float64   `json:"monto_total"`
	Status        string    `json:"status"`
	Author        string    `json:"author"`
	Items         []ItemRow `json:"items"`
}

// Pagination mirrors the listing metadata consumed by the client JS.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// ListResult is the full listing response.
type ListResult struct {
	Proformas  []ProformaRow `json:"proformas"`
	Pagination Pagination    `json:"pagination"`
}

// ProformaDetail is the editor payload for one proforma. Fecha uses the
// ISO form the date input expects, unlike listings.
type ProformaDetail struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	CotizacionNro string      `json:"cotizacion_nro"`
	Fecha         string      `json:"fecha"`
	Cliente       string      `json:"cliente"`
	IncluyeIGV    bool        `json:"incluye_igv"`
	MontoTotal    float64     `json:"monto_total"`
	Status        string      `json:"status"`
	Items         []ItemInput `json:"items"`
}
