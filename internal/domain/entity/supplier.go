package entity

import "time"

// Supplier proveedor de materias primas.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	CreatedAt time.Time
}
