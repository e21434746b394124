package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rental-engine/internal/domain/customer"
)

type RegisterCustomerRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Type        string `json:"type"`
}

func (r *RegisterCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("fullName cannot be empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email cannot be empty")
	}
	return nil
}

func (r *RegisterCustomerRequest) ToDomain() *customer.Customer {
	return customer.NewCustomer(r.FullName, r.Email, r.PhoneNumber, r.Address, r.Type)
}

type UpdateCustomerRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Type        string `json:"type"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("fullName cannot be empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email cannot be empty")
	}
	return nil
}

type CustomerResponse struct {
	CustomerID       string    `json:"customerId"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	Address          string    `json:"address"`
	Type             string    `json:"type"`
	RegistrationDate time.Time `json:"registrationDate"`
	Active           bool      `json:"active"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID:       strconv.FormatInt(cust.CustomerID, 10),
		FullName:         cust.FullName,
		Email:            cust.Email,
		PhoneNumber:      cust.PhoneNumber,
		Address:          cust.Address,
		Type:             cust.Type,
		RegistrationDate: cust.RegistrationDate,
		Active:           cust.ActiveStatus,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		responses = append(responses, NewCustomerResponse(cust))
	}
	return responses
}
