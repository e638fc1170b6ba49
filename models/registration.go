// models/registration.go
package models

// RegistrationInput is the payload of the registration save endpoint.
type RegistrationInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName"`
	PhotoFrontID string `json:"photoFrontId"`
}

// IDDetails is the result of vision-model extraction from a captured ID
// card image. Fields the model cannot read come back as "Not found".
type IDDetails struct {
	Name     string `json:"name"`
	IDNumber string `json:"idNumber"`
	Expiry   string `json:"expiry"`
}
