package customer

// Customer is the record exposed by the /cliente API. JSON names keep the
// wire format existing clients already send.
type Customer struct {
	ID         string `json:"clienteId" validate:"required"`
	Name       string `json:"nome"`
	NationalID string `json:"cpf"`
}

// Seed provides the two records every fresh store starts with.
func Seed() []Customer {
	return []Customer{
		{ID: "1", Name: "João", NationalID: "12345678912"},
		{ID: "2", Name: "Maria", NationalID: "98765432121"},
	}
}
