package validation

// Student profile schemas
var (
	StudentCreate = Schema{
		"user_id":           {Tags: "required,integer,exists=users.id,unique=students.user_id"},
		"student_id_number": {Tags: "required,string,max=100,unique=students.student_id_number"},
		"date_of_birth":     {Tags: "required,date"},
		"address":           {Tags: "required,string"},
		"phone_number":      {Tags: "required,string,max=50"},
	}
	StudentUpdate = StudentCreate.Optional()
	// StudentSelfUpdate is what a student may change on their own profile
	StudentSelfUpdate = Schema{
		"date_of_birth": StudentUpdate["date_of_birth"],
		"address":       StudentUpdate["address"],
		"phone_number":  StudentUpdate["phone_number"],
	}
)

// Teacher profile schemas
var (
	TeacherCreate = Schema{
		"user_id":            {Tags: "required,integer,exists=users.id,unique=teachers.user_id"},
		"employee_id_number": {Tags: "required,string,max=100,unique=teachers.employee_id_number"},
		"date_of_hire":       {Tags: "required,date"},
		"department":         {Tags: "required,string,max=255"},
	}
	TeacherUpdate     = TeacherCreate.Optional()
	TeacherSelfUpdate = Schema{
		"date_of_hire": TeacherUpdate["date_of_hire"],
		"department":   TeacherUpdate["department"],
	}
)

// Account schemas
var (
	Register = Schema{
		"name":     {Tags: "required,string,max=255"},
		"email":    {Tags: "required,string,email,max=255,unique=users.email"},
		"password": {Tags: "required,string,min=8,confirmed"},
	}
	Login = Schema{
		"email":    {Tags: "required,string,email"},
		"password": {Tags: "required,string"},
	}
)
