// AngelaMos | 2026
// roles.go

package keycloak

// Realm role names recognized by the platform.
const (
	RoleAdmin     = "Administrador"
	RolePurchases = "Compras"
	RoleSales     = "Ventas"
	RoleLogistics = "Logistica"
	RoleClient    = "Cliente"
)

// roleRepresentation is the realm-role shape the admin API expects when
// mapping roles onto identities.
type roleRepresentation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Composite   bool   `json:"composite"`
	ClientRole  bool   `json:"clientRole"`
	ContainerID string `json:"containerId"`
}

// realmRoles mirrors the role catalog provisioned in the realm import.
// The identifiers are fixed by the realm definition, not discovered at
// runtime, so a drifted realm fails loudly at assignment time.
var realmRoles = map[string]roleRepresentation{
	RoleAdmin: {
		ID:          "7f3a2d1e-6b0b-4f32-9c96-6a2a2b5f5a11",
		Name:        RoleAdmin,
		Description: "Rol administrador del realm para la app Medisupply",
		ContainerID: "medisupply-realm",
	},
	RolePurchases: {
		ID:          "2b1c5e42-9d3a-4a0f-8f3c-3c7e6f2a1b22",
		Name:        RolePurchases,
		Description: "Rol departamento de compras del realm para la app Medisupply",
		ContainerID: "medisupply-realm",
	},
	RoleSales: {
		ID:          "a6e5c3b1-2d4f-4c7a-9b8e-1f2a3d4e5f33",
		Name:        RoleSales,
		Description: "Rol gerente de cuenta / vendedor del realm para la app Medisupply",
		ContainerID: "medisupply-realm",
	},
	RoleLogistics: {
		ID:          "c4d3e2f1-a5b6-4c7d-8e9f-0a1b2c3d4e44",
		Name:        RoleLogistics,
		Description: "Rol personal logístico del realm para la app Medisupply",
		ContainerID: "medisupply-realm",
	},
	RoleClient: {
		ID:          "e1f2a3b4-c5d6-4e7f-8a9b-0c1d2e3f4a55",
		Name:        RoleClient,
		Description: "Rol cliente institucional del realm para la app Medisupply",
		ContainerID: "medisupply-realm",
	},
}

// AvailableRoles returns the assignable role names in a stable order.
func AvailableRoles() []string {
	return []string{RoleAdmin, RolePurchases, RoleSales, RoleLogistics, RoleClient}
}
