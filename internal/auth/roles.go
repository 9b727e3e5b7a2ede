package auth

// Role is the closed set of access roles the backend issues at login.
type Role string

const (
	RoleHRManager      Role = "HR_MANAGER"
	RoleHRSupervisor   Role = "HR_SUPERVISOR"
	RoleHRCompany      Role = "HR_COMPANY"
	RoleDepartmentHead Role = "DEPARTMENT_HEAD"
	RoleEmployee       Role = "EMPLOYEE"
)

// AccessLevel is the coarse visibility tier a role grants.
type AccessLevel string

const (
	AccessFull       AccessLevel = "FULL"
	AccessCompany    AccessLevel = "COMPANY"
	AccessDepartment AccessLevel = "DEPARTMENT"
	AccessLimited    AccessLevel = "LIMITED"
)

// DisplayName returns the human-readable role name.
func (r Role) DisplayName() string {
	switch r {
	case RoleHRManager:
		return "HR Manager"
	case RoleHRSupervisor:
		return "HR Supervisor"
	case RoleHRCompany:
		return "HR Company Level"
	case RoleDepartmentHead:
		return "Department Head"
	case RoleEmployee:
		return "Employee"
	default:
		return "Unknown Role"
	}
}

// The capability predicates below are pure functions of the role. They never
// touch the network; the backend independently enforces the same rules.

func (r Role) CanAccessEmployeeManagement() bool {
	return r == RoleHRManager || r == RoleHRSupervisor || r == RoleHRCompany || r == RoleDepartmentHead
}

func (r Role) CanEditEmployee() bool {
	return r == RoleHRManager || r == RoleHRSupervisor || r == RoleHRCompany
}

func (r Role) CanDeleteEmployee() bool {
	return r == RoleHRManager || r == RoleHRSupervisor
}

func (r Role) CanManageCompany() bool {
	return r == RoleHRManager
}

func (r Role) CanManageDepartments() bool {
	return r == RoleHRManager || r == RoleHRSupervisor
}

func (r Role) CanManageJobTitles() bool {
	return r == RoleHRManager || r == RoleHRSupervisor || r == RoleHRCompany
}

func (r Role) CanManageUsers() bool {
	return r == RoleHRManager || r == RoleHRSupervisor
}

// CanApplyLeave holds for every role.
func (r Role) CanApplyLeave() bool {
	return true
}

func (r Role) CanApproveDepartmentLeave() bool {
	return r == RoleDepartmentHead
}

func (r Role) CanAcknowledgeLeave() bool {
	return r == RoleHRManager || r == RoleHRSupervisor || r == RoleHRCompany
}

func (r Role) CanViewAllLeaves() bool {
	return r == RoleHRManager || r == RoleHRSupervisor || r == RoleHRCompany
}

func (r Role) CanViewDepartmentLeaves() bool {
	return r == RoleHRManager || r == RoleHRSupervisor || r == RoleHRCompany || r == RoleDepartmentHead
}

// Level returns the coarse visibility tier for the role.
func (r Role) Level() AccessLevel {
	switch r {
	case RoleHRManager:
		return AccessFull
	case RoleHRSupervisor, RoleHRCompany:
		return AccessCompany
	case RoleDepartmentHead:
		return AccessDepartment
	default:
		return AccessLimited
	}
}

// Capabilities lists the granted capability names, for display.
func (r Role) Capabilities() []string {
	caps := []string{}
	add := func(ok bool, name string) {
		if ok {
			caps = append(caps, name)
		}
	}
	add(r.CanAccessEmployeeManagement(), "view employees")
	add(r.CanEditEmployee(), "edit employees")
	add(r.CanDeleteEmployee(), "delete employees")
	add(r.CanManageCompany(), "manage companies")
	add(r.CanManageDepartments(), "manage departments")
	add(r.CanManageJobTitles(), "manage job titles")
	add(r.CanManageUsers(), "manage users")
	add(r.CanApplyLeave(), "apply for leave")
	add(r.CanApproveDepartmentLeave(), "approve department leave")
	add(r.CanAcknowledgeLeave(), "acknowledge leave")
	add(r.CanViewAllLeaves(), "view all leaves")
	add(r.CanViewDepartmentLeaves(), "view department leaves")
	return caps
}
