package company

import "context"

// Company is one distinct company name found in user_company with the number
// of distinct users associated with it.
type Company struct {
	Name      string
	UserCount int
}

type RepositoryAPI interface {
	Directory(ctx context.Context) ([]*Company, error)
	UsersOf(ctx context.Context, name string) ([]string, error)
}

type CompanyResponse struct {
	Name      string `json:"name"`
	UserCount int    `json:"userCount"`
}

type CompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

type CompanyUsersResponse struct {
	Name string   `json:"name"`
	UIDs []string `json:"uids"`
}

func (c *Company) ToResponse() CompanyResponse {
	return CompanyResponse{
		Name:      c.Name,
		UserCount: c.UserCount,
	}
}
