package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every repository query on a
// tenant-owned table goes through it so a missing filter shows up in review.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ForEmployee narrows further to a single employee within the company.
func ForEmployee(companyID, employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ? AND employee_id = ?", companyID, employeeID)
	}
}
