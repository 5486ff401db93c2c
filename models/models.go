package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Role values stored on users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Proforma status values. A proforma starts Enviada and may be marked
// Aprobada or Rechazada; re-setting a status overwrites the previous one.
const (
	StatusEnviada   = "Enviada"
	StatusAprobada  = "Aprobada"
	StatusRechazada = "Rechazada"
)

// ValidStatus reports whether s is one of the defined proforma statuses.
func ValidStatus(s string) bool {
	return s == StatusEnviada || s == StatusAprobada || s == StatusRechazada
}

// User represents an authenticated app user.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Fullname     string    `bun:"fullname,notnull"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID        string    `bun:"id,pk"`
	UserID    int64     `bun:"user_id,notnull"`
	User      User      `bun:"rel:belongs-to,join:user_id=id"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the session belongs to an admin user.
func (s Session) IsAdmin() bool {
	return s.User.Role == RoleAdmin
}

// Cliente is a client record owned by one user.
type Cliente struct {
	bun.BaseModel `bun:"table:clientes,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	Nombre    string    `bun:"nombre,notnull"`
	RucDni    string    `bun:"ruc_dni"`
	Direccion string    `bun:"direccion"`
	Telefono  string    `bun:"telefono"`
	Email     string    `bun:"email"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Proforma is a quotation document. MontoTotal is always recomputed
// server-side from the item set; client-supplied totals are ignored.
// The client name is free text on purpose: there is no enforced link
// from a proforma to a cliente row.
type Proforma struct {
	bun.BaseModel `bun:"table:proformas,alias:p"`

	ID            int64           `bun:"id,pk,autoincrement"`
	UserID        int64           `bun:"user_id,notnull"`
	CotizacionNro string          `bun:"cotizacion_nro,notnull"`
	Fecha         time.Time       `bun:"fecha,notnull"`
	Cliente       string          `bun:"cliente,notnull"`
	IncluyeIGV    bool            `bun:"incluye_igv,notnull,default:false"`
	MontoTotal    decimal.Decimal `bun:"monto_total,notnull"`
	Status        string          `bun:"status,notnull,default:'Enviada'"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// ProformaItem is a line item owned by exactly one proforma. Edits
// replace the whole item set; deletion cascades from the parent row.
type ProformaItem struct {
	bun.BaseModel `bun:"table:proforma_items,alias:pi"`

	ID              int64           `bun:"id,pk,autoincrement"`
	ProformaID      int64           `bun:"proforma_id,notnull"`
	ItemDescripcion string          `bun:"item_descripcion,notnull"`
	Cantidad        decimal.Decimal `bun:"cantidad,notnull"`
	PrecioUnitario  decimal.Decimal `bun:"precio_unitario,notnull"`
}
