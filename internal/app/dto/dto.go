package dto

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Pill struct {
	Label     string `json:"label"`
	Highlight bool   `json:"highlight,omitempty"`
}

type User struct {
	Ownerid   int64  `json:"ownerid"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsStudent bool   `json:"is_student"`
	Activated bool   `json:"activated"`
	Pills     []Pill `json:"pills"`
}

// UserPage mirrors a paginated list; Next and Previous are relative links
// carrying the same filters, or null at either end.
type UserPage struct {
	Results    []User  `json:"results"`
	TotalCount int     `json:"total_count"`
	TotalPages int     `json:"total_pages"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
}

type Plan struct {
	Value string `json:"value"`
	Tier  string `json:"tier"`
}

type Account struct {
	ActivatedUserCount int  `json:"activated_user_count"`
	Plan               Plan `json:"plan"`
	PlanAutoActivate   bool `json:"plan_auto_activate"`
}

type Seats struct {
	Users   UserPage `json:"users"`
	Account Account  `json:"account"`
}

type Upsell struct {
	Open       bool   `json:"open"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	UpgradeURL string `json:"upgrade_url"`
	SalesURL   string `json:"sales_url"`
}

type ToggleResponse struct {
	Action string  `json:"action"`
	User   *User   `json:"user,omitempty"`
	Upsell *Upsell `json:"upsell,omitempty"`
}
