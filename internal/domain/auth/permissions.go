package auth

import "slices"

const (
	PermEmployeesRead   = "employees.read"
	PermEmployeesCreate = "employees.create"
	PermPromotionWrite  = "promotion.write"
	PermPromotionAnswer = "promotion.answer"
	PermClaimsSubmit    = "claims.submit"
	PermPayslipsOwn     = "payslips.own"
	PermPayslipsAll     = "payslips.all"
	PermPayrollRun      = "payroll.run"
	PermCalendarAdvance = "calendar.advance"
	PermAuditRead       = "audit.read"
)

var RolePermissions = map[Role][]string{
	RoleEmployee: {
		PermPromotionAnswer,
		PermClaimsSubmit,
		PermPayslipsOwn,
	},
	RoleHR: {
		PermEmployeesRead,
		PermPromotionWrite,
		PermPayslipsAll,
		PermPayrollRun,
		PermAuditRead,
	},
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesCreate,
		PermPayslipsAll,
		PermPayrollRun,
		PermCalendarAdvance,
		PermAuditRead,
	},
}

func HasPermission(role Role, permission string) bool {
	return slices.Contains(RolePermissions[role], permission)
}

// Require returns ErrForbidden unless the identity's role grants permission.
func Require(id Identity, permission string) error {
	if !HasPermission(id.Role, permission) {
		return ErrForbidden
	}
	return nil
}

// RequireRole returns ErrForbidden unless the identity holds one of roles.
func RequireRole(id Identity, roles ...Role) error {
	if !slices.Contains(roles, id.Role) {
		return ErrForbidden
	}
	return nil
}
