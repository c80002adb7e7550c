package models

// Employee is the stored employee record. ID is assigned by the store on first save and never changes
// afterwards. Each store decides how the id is persisted, so it carries no bson mapping.
type Employee struct {
	ID        string `json:"id" bson:"-"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email"`
}

// EmployeeDTO is the employee as it is read from and written to HTTP bodies.
type EmployeeDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
