package domain

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleConsultant Role = "consultant"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleConsultant, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role works on customers' requests.
func (r Role) IsStaff() bool {
	return r == RoleConsultant || r == RoleAdmin
}
