// Package access resuelve qué puede ver o modificar un llamante a partir de los claims de su token.
package access

import "strings"

// Principal identidad del llamante tal como la transporta el token.
type Principal struct {
	UserID     string
	CompanyID  string // vacío = usuario sin empresa
	Email      string
	Name       string
	Roles      []string
	SuperAdmin bool
}

// HasCompany informa si el llamante pertenece a una empresa.
func (p Principal) HasCompany() bool { return p.CompanyID != "" }

// HasRole informa si el llamante tiene alguno de los roles indicados (comparación sin mayúsculas).
func (p Principal) HasRole(roles ...string) bool {
	for _, have := range p.Roles {
		for _, want := range roles {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// Visibility regla de visibilidad de ofertas.
type Visibility string

const (
	// VisibilityOwner solo el usuario que creó la oferta la ve (por defecto).
	VisibilityOwner Visibility = "owner"
	// VisibilityTenant cualquier usuario de la misma empresa la ve.
	VisibilityTenant Visibility = "tenant"
)

// ParseVisibility convierte el valor de configuración; cualquier valor desconocido es owner.
func ParseVisibility(s string) Visibility {
	if Visibility(strings.ToLower(strings.TrimSpace(s))) == VisibilityTenant {
		return VisibilityTenant
	}
	return VisibilityOwner
}

// CanAccessOffer informa si p puede leer o modificar una oferta de ownerID en companyID.
// Un recurso no visible se trata igual que uno inexistente.
func (v Visibility) CanAccessOffer(p Principal, ownerID, companyID string) bool {
	if p.UserID == "" {
		return false
	}
	if ownerID == p.UserID {
		return true
	}
	return v == VisibilityTenant && p.HasCompany() && companyID == p.CompanyID
}

// SameTenant informa si un recurso de companyID pertenece a la empresa de p.
func SameTenant(p Principal, companyID string) bool {
	return p.HasCompany() && companyID == p.CompanyID
}
