package auth

import "testing"

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role              Role
		viewEmployees     bool
		editEmployees     bool
		deleteEmployees   bool
		manageCompany     bool
		manageDepartments bool
		manageJobTitles   bool
		manageUsers       bool
		approveDeptLeave  bool
		acknowledgeLeave  bool
		level             AccessLevel
	}{
		{RoleHRManager, true, true, true, true, true, true, true, false, true, AccessFull},
		{RoleHRSupervisor, true, true, true, false, true, true, true, false, true, AccessCompany},
		{RoleHRCompany, true, true, false, false, false, true, false, false, true, AccessCompany},
		{RoleDepartmentHead, true, false, false, false, false, false, false, true, false, AccessDepartment},
		{RoleEmployee, false, false, false, false, false, false, false, false, false, AccessLimited},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.CanAccessEmployeeManagement(); got != tt.viewEmployees {
				t.Errorf("CanAccessEmployeeManagement() = %v, want %v", got, tt.viewEmployees)
			}
			if got := tt.role.CanEditEmployee(); got != tt.editEmployees {
				t.Errorf("CanEditEmployee() = %v, want %v", got, tt.editEmployees)
			}
			if got := tt.role.CanDeleteEmployee(); got != tt.deleteEmployees {
				t.Errorf("CanDeleteEmployee() = %v, want %v", got, tt.deleteEmployees)
			}
			if got := tt.role.CanManageCompany(); got != tt.manageCompany {
				t.Errorf("CanManageCompany() = %v, want %v", got, tt.manageCompany)
			}
			if got := tt.role.CanManageDepartments(); got != tt.manageDepartments {
				t.Errorf("CanManageDepartments() = %v, want %v", got, tt.manageDepartments)
			}
			if got := tt.role.CanManageJobTitles(); got != tt.manageJobTitles {
				t.Errorf("CanManageJobTitles() = %v, want %v", got, tt.manageJobTitles)
			}
			if got := tt.role.CanManageUsers(); got != tt.manageUsers {
				t.Errorf("CanManageUsers() = %v, want %v", got, tt.manageUsers)
			}
			if got := tt.role.CanApproveDepartmentLeave(); got != tt.approveDeptLeave {
				t.Errorf("CanApproveDepartmentLeave() = %v, want %v", got, tt.approveDeptLeave)
			}
			if got := tt.role.CanAcknowledgeLeave(); got != tt.acknowledgeLeave {
				t.Errorf("CanAcknowledgeLeave() = %v, want %v", got, tt.acknowledgeLeave)
			}
			if !tt.role.CanApplyLeave() {
				t.Error("CanApplyLeave() should hold for every role")
			}
			if got := tt.role.Level(); got != tt.level {
				t.Errorf("Level() = %v, want %v", got, tt.level)
			}
		})
	}
}

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleHRManager, "HR Manager"},
		{RoleHRSupervisor, "HR Supervisor"},
		{RoleHRCompany, "HR Company Level"},
		{RoleDepartmentHead, "Department Head"},
		{RoleEmployee, "Employee"},
		{Role("SOMETHING_ELSE"), "Unknown Role"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("%s.DisplayName() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestCapabilities_AreListedForDisplay(t *testing.T) {
	caps := RoleEmployee.Capabilities()
	if len(caps) != 1 || caps[0] != "apply for leave" {
		t.Errorf("Capabilities(EMPLOYEE) = %v, want only leave application", caps)
	}
	if got := len(RoleHRManager.Capabilities()); got < 10 {
		t.Errorf("Capabilities(HR_MANAGER) lists %d entries, expected the full set", got)
	}
}
