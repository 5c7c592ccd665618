package user

type User struct {
	Ownerid   int64
	Username  string
	Name      string
	Email     string
	IsAdmin   bool
	IsStudent bool
	Activated bool
}

type Pill struct {
	Label     string
	Highlight bool
}

// Pills are the badges shown next to a user row: admin first, then the
// email, then the student marker. Missing entries are skipped.
func (u User) Pills() []Pill {
	pills := make([]Pill, 0, 3)
	if u.IsAdmin {
		pills = append(pills, Pill{Label: "Admin", Highlight: true})
	}
	if u.Email != "" {
		pills = append(pills, Pill{Label: u.Email})
	}
	if u.IsStudent {
		pills = append(pills, Pill{Label: "Student"})
	}
	return pills
}

type Page struct {
	Results    []User
	TotalCount int
	TotalPages int
}

// Caller is the user on whose behalf a request runs.
type Caller struct {
	Username string
	IsAdmin  bool
}

// CanManage reports whether the caller may change target's activation.
// Non-admins may only act on themselves.
func (c Caller) CanManage(target User) bool {
	return c.IsAdmin || c.Username == target.Username
}
