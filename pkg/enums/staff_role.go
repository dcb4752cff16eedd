package enums

// StaffRole describes what a staff account may do.
type StaffRole string

const (
	StaffRoleAdmin   StaffRole = "admin"
	StaffRoleManager StaffRole = "manager"
	StaffRoleClerk   StaffRole = "clerk"
)

func (r StaffRole) IsValid() bool {
	switch r {
	case StaffRoleAdmin, StaffRoleManager, StaffRoleClerk:
		return true
	}
	return false
}

// CanWrite reports whether the role may mutate inventory state.
func (r StaffRole) CanWrite() bool {
	return r == StaffRoleAdmin || r == StaffRoleManager
}
