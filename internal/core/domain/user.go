package domain

// Console roles, as issued by the CRM API.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// User is the profile of an authenticated console operator, as reported by
// the CRM API. Profiles are replaced wholesale on refresh, never merged.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
}
