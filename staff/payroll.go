/*
payroll.go - Derived salary breakdown

PURPOSE:
  Computes a deterministic, side-effect-free salary breakdown for one
  employee as of "now". Nothing here is persisted; the derivation is
  recomputed on every request from fresh attendance/credit/settings reads,
  so there is no caching or invalidation concern.

ALGORITHM:
  1. baseSalary = employee.salary
  2. leaveCount = attendance marks in the current calendar month
     ("YYYY-MM" prefix match) with status absent, half-day or sick-leave.
     Paid leave is excluded - it is paid.
  3. leaveDeduction = percentage: base * value * leaveCount / 100
                      fixed:      value * leaveCount
  4. unpaidCredits = sum of amount over credits with isPaid == false,
     all-time (no month window).
  5. netSalary = max(0, base - leaveDeduction - unpaidCredits)

  Money arithmetic runs in decimal to avoid float drift across the
  multiply/divide chain; results convert to float64 at the boundary.
*/
package staff

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// SalaryBreakdown is the full payroll derivation for one employee.
type SalaryBreakdown struct {
	BaseSalary      float64 `json:"baseSalary"`
	LeaveDeductions float64 `json:"leaveDeductions"`
	UnpaidCredits   float64 `json:"unpaidCredits"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
}

// SalaryBreakdown computes the breakdown for the employee as of the current
// calendar month. Returns nil if the employee does not exist.
func (f *Facade) SalaryBreakdown(ctx context.Context, employeeID string) (*SalaryBreakdown, error) {
	emp, err := f.store.GetEmployee(ctx, employeeID)
	if err != nil || emp == nil {
		return nil, err
	}
	attendance, err := f.store.ListAttendanceByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	credits, err := f.store.ListCreditsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	settings, err := f.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	b := ComputeSalaryBreakdown(*emp, attendance, credits, settings.LeaveDeduction, CurrentMonth())
	return &b, nil
}

// ComputeSalaryBreakdown is the pure derivation. month is the "YYYY-MM"
// prefix that selects which attendance records count against salary.
func ComputeSalaryBreakdown(emp Employee, attendance []Attendance, credits []Credit, ded LeaveDeduction, month string) SalaryBreakdown {
	base := decimal.NewFromFloat(emp.Salary)

	leaveCount := 0
	for _, a := range attendance {
		if strings.HasPrefix(a.Date, month) && isDeductibleLeave(a.Status) {
			leaveCount++
		}
	}

	leaves := decimal.Zero
	if leaveCount > 0 {
		value := decimal.NewFromFloat(ded.Value)
		count := decimal.NewFromInt(int64(leaveCount))
		if ded.Type == DeductionPercentage {
			leaves = base.Mul(value).Mul(count).Div(decimal.NewFromInt(100))
		} else {
			leaves = value.Mul(count)
		}
	}

	unpaid := decimal.Zero
	for _, c := range credits {
		if !c.IsPaid {
			unpaid = unpaid.Add(decimal.NewFromFloat(c.Amount))
		}
	}

	total := leaves.Add(unpaid)
	net := base.Sub(total)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return SalaryBreakdown{
		BaseSalary:      toFloat(base),
		LeaveDeductions: toFloat(leaves),
		UnpaidCredits:   toFloat(unpaid),
		TotalDeductions: toFloat(total),
		NetSalary:       toFloat(net),
	}
}

// isDeductibleLeave reports whether the status counts against salary.
// Paid leave never deducts.
func isDeductibleLeave(status string) bool {
	switch status {
	case AttendanceAbsent, AttendanceHalfDay, AttendanceSickLeave:
		return true
	}
	return false
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
