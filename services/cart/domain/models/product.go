package models

// ProductIn is the client input for adding a product to the cart.
// Constraints are declared as validator tags and enforced by the validation
// gateway before any price lookup or ledger mutation happens.
type ProductIn struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Quantity int    `json:"quantity" validate:"required,gt=0,lte=999999"`
}

// ProductRm is the client input for removing a product from the cart.
type ProductRm struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}
