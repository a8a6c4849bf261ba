package roster

// Header candidates, first match wins. The upper-case names are the ones the
// HR export uses.
var (
	nameColumns       = []string{"full_name", "full name", "name"}
	leaveNameColumns  = []string{"jw_name", "leave_name", "pto_name"}
	departmentColumns = []string{"department", "dept"}
	officeColumns     = []string{"office", "site"}
	requiredColumns   = []string{"required_days", "required days", "required"}
)
