package customer

import "time"

type Customer struct {
	CustomerID       int64     `json:"customerId"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	Address          string    `json:"address"`
	Type             string    `json:"type"`
	RegistrationDate time.Time `json:"registrationDate"`
	ActiveStatus     bool      `json:"activeStatus"`
}

func NewCustomer(fullName, email, phoneNumber, address, customerType string) *Customer {
	return &Customer{
		FullName:         fullName,
		Email:            email,
		PhoneNumber:      phoneNumber,
		Address:          address,
		Type:             customerType,
		RegistrationDate: time.Now(),
		ActiveStatus:     true,
	}
}

// ApplyUpdate copies the mutable contact fields from src. Registration date
// and active status are owned by registration and deactivation respectively.
func (c *Customer) ApplyUpdate(src *Customer) {
	c.FullName = src.FullName
	c.Email = src.Email
	c.PhoneNumber = src.PhoneNumber
	c.Address = src.Address
	c.Type = src.Type
}

// Deactivate is one-way; a deactivated customer is never reactivated.
func (c *Customer) Deactivate() {
	c.ActiveStatus = false
}
