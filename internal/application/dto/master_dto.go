package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code          string `json:"code" validate:"required,min=1,max=100"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Variety       string `json:"variety,omitempty"`
	Type          string `json:"type,omitempty"`
	DefaultUnit   string `json:"default_unit" validate:"required"`
	ShelfLifeDays int    `json:"shelf_life_days,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil = sin cambio.
type UpdateProductRequest struct {
	Name          *string `json:"name,omitempty"`
	Variety       *string `json:"variety,omitempty"`
	Type          *string `json:"type,omitempty"`
	DefaultUnit   *string `json:"default_unit,omitempty"`
	ShelfLifeDays *int    `json:"shelf_life_days,omitempty"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Variety       string `json:"variety,omitempty"`
	Type          string `json:"type,omitempty"`
	DefaultUnit   string `json:"default_unit"`
	ShelfLifeDays int    `json:"shelf_life_days"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
