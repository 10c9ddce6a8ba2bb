package postgres

import (
	"context"
	"fmt"

	userDatamodel "github.com/frahmantamala/identity-service/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Associate inserts one user_company row per name, keeping duplicates.
func (r *CompanyRepository) Associate(ctx context.Context, uid string, companyNames []string) error {
	if len(companyNames) == 0 {
		return nil
	}

	rows := make([]userDatamodel.UserCompany, len(companyNames))
	for i, name := range companyNames {
		rows[i] = userDatamodel.UserCompany{UserID: uid, CompanyName: name}
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert companies for user %s: %w", uid, err)
	}
	return nil
}

func (r *CompanyRepository) CompaniesForUser(ctx context.Context, uid string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.UserCompany{}).
		Where("user_id = ?", uid).
		Order("id ASC").
		Pluck("company_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("select companies for user %s: %w", uid, err)
	}
	return names, nil
}

// CompaniesForAllUsers reads the whole association table in one query and
// groups it by user. Users without associations have no key.
func (r *CompanyRepository) CompaniesForAllUsers(ctx context.Context) (map[string][]string, error) {
	var rows []userDatamodel.UserCompany
	err := r.db.WithContext(ctx).
		Select("user_id", "company_name").
		Order("user_id ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select companies: %w", err)
	}

	byUser := make(map[string][]string)
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row.CompanyName)
	}
	return byUser, nil
}
