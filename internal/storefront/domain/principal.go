package domain

// Principal is a login identity from the static principal list. Usernames
// are matched case-insensitively; passwords are compared exactly.
type Principal struct {
	Username string
	Password string
	Role     string
}

// CurrentUser is what an authenticated caller learns about itself.
type CurrentUser struct {
	Username string
	Role     string
}
