package models

// ClassGroup defines the fixed set of class-group labels partitioning
// students and files into cohorts.
type ClassGroup string

const (
	FirstYearGroup1  ClassGroup = "1 س 1"
	FirstYearGroup2  ClassGroup = "1 س 2"
	SecondYearGroup1 ClassGroup = "2 س 1"
	SecondYearGroup2 ClassGroup = "2 س 2"
	ThirdYear        ClassGroup = "3 س"
)

// ClassGroups lists every valid class-group in display order.
var ClassGroups = []ClassGroup{
	FirstYearGroup1,
	FirstYearGroup2,
	SecondYearGroup1,
	SecondYearGroup2,
	ThirdYear,
}

// IsValidClassGroup reports whether label is one of the fixed class-groups.
func IsValidClassGroup(label string) bool {
	for _, g := range ClassGroups {
		if string(g) == label {
			return true
		}
	}
	return false
}

// Role defines the resolved caller role for a request.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleStudent   Role = "student"
	RoleAdmin     Role = "admin"
)
