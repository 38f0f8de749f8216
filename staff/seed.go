package staff

import "context"

// SeedSampleData populates an empty store with a small demo data set so the
// dashboard has something to show on first run. No-op when any employee
// already exists.
func SeedSampleData(ctx context.Context, f *Facade) error {
	existing, err := f.Employees(ctx)
	if err != nil || len(existing) > 0 {
		return err
	}

	john, err := f.CreateEmployee(ctx, Employee{
		Name:        "John Doe",
		Salary:      75000,
		JoiningDate: "2023-01-15",
		Mobile:      "+1234567890",
		Email:       "john@company.com",
		Role:        "Software Engineer",
		Status:      StatusActive,
	})
	if err != nil {
		return err
	}
	jane, err := f.CreateEmployee(ctx, Employee{
		Name:        "Jane Smith",
		Salary:      85000,
		JoiningDate: "2022-11-20",
		Mobile:      "+1234567891",
		Email:       "jane@company.com",
		Role:        "Project Manager",
		Status:      StatusActive,
	})
	if err != nil {
		return err
	}

	today := Today()
	for _, id := range []string{john.ID, jane.ID} {
		if _, err := f.CreateAttendance(ctx, Attendance{
			EmployeeID: id,
			Date:       today,
			Status:     AttendancePresent,
		}); err != nil {
			return err
		}
	}
	return nil
}
