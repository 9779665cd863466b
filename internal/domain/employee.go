package domain

// Employee is the document stored per employee record.
type Employee struct {
	EmployeeID  string   `bson:"employee_id"`
	Name        string   `bson:"name"`
	Department  string   `bson:"department"`
	Salary      float64  `bson:"salary"`
	JoiningDate string   `bson:"joining_date"`
	Skills      []string `bson:"skills"`
}

// EmployeeUpdate carries a partial update; nil fields are left untouched.
type EmployeeUpdate struct {
	Name        *string
	Department  *string
	Salary      *float64
	JoiningDate *string
	Skills      []string
}

// IsEmpty reports whether the update changes nothing.
func (u EmployeeUpdate) IsEmpty() bool {
	return u.Name == nil && u.Department == nil && u.Salary == nil && u.JoiningDate == nil && u.Skills == nil
}

// DepartmentSalary is the aggregation result for average salary per department.
type DepartmentSalary struct {
	Department string  `bson:"_id"`
	AvgSalary  float64 `bson:"avg_salary"`
}
