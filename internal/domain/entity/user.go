package entity

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "ges" // gestor: puede crear encomendas
	RoleOperator = "op"
)

// User representa un usuario del sistema; actúa como actor en Order y StockMovement.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, ges, op
}
