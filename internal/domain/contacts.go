package domain

type ClientRole string

const (
	RoleClient    ClientRole = "Client"
	RoleColleague ClientRole = "Colleague"
)

type Client struct {
	ID            string     `json:"id"`
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Phone         string     `json:"phone" validate:"required"`
	Role          ClientRole `json:"role" validate:"omitempty,oneof=Client Colleague"`
	Language      string     `json:"language" validate:"omitempty,oneof=en fr ar"`
	PreferredComm string     `json:"preferredComm" validate:"omitempty,oneof=Email WhatsApp Both"`
	Notes         string     `json:"notes,omitempty"`
}

type Colleague struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Position string `json:"position"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required"`
}

type CorporatePartner struct {
	ID            string `json:"id"`
	CompanyName   string `json:"companyName" validate:"required"`
	ContactPerson string `json:"contactPerson" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes,omitempty"`
}

// AgentProfile signs outbound messages.
type AgentProfile struct {
	Name       string `json:"name" validate:"required"`
	AgencyName string `json:"agencyName"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Website    string `json:"website,omitempty"`
}
