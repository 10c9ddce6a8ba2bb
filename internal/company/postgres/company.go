package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/identity-service/internal/company"
	userDatamodel "github.com/frahmantamala/identity-service/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

type directoryRow struct {
	CompanyName string `gorm:"column:company_name"`
	UserCount   int    `gorm:"column:user_count"`
}

func (r *CompanyRepository) Directory(ctx context.Context) ([]*company.Company, error) {
	var rows []directoryRow
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.UserCompany{}).
		Select("company_name, COUNT(DISTINCT user_id) AS user_count").
		Group("company_name").
		Order("company_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select company directory: %w", err)
	}

	companies := make([]*company.Company, len(rows))
	for i, row := range rows {
		companies[i] = &company.Company{Name: row.CompanyName, UserCount: row.UserCount}
	}
	return companies, nil
}

func (r *CompanyRepository) UsersOf(ctx context.Context, name string) ([]string, error) {
	var uids []string
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.UserCompany{}).
		Distinct("user_id").
		Where("company_name = ?", name).
		Order("user_id ASC").
		Pluck("user_id", &uids).Error
	if err != nil {
		return nil, fmt.Errorf("select users of company %s: %w", name, err)
	}
	return uids, nil
}
