package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/CoderRdm/Placement-Cell/internal/dto"
	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
)

// ErrSeedForbidden 非开发环境禁止重置数据
var ErrSeedForbidden = errors.New("仅开发环境允许重置种子数据")

//go:embed seed.yaml
var seedFile []byte

// seedData seed.yaml 结构
type seedData struct {
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	Degrees []struct {
		Type            string `yaml:"type"`
		Name            string `yaml:"name"`
		Description     string `yaml:"description"`
		Specializations []struct {
			Name        string `yaml:"name"`
			Code        string `yaml:"code"`
			Description string `yaml:"description"`
		} `yaml:"specializations"`
	} `yaml:"degrees"`
}

func loadSeedData(raw []byte) (*seedData, error) {
	var data seedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析种子数据失败: %w", err)
	}
	return &data, nil
}

// SeedService 参考数据重置
type SeedService interface {
	// Seed 清空学生及参考数据并写入固定的类别、学位、专业方向
	Seed(ctx context.Context) (*dto.SeedResponse, error)
}

type seedService struct {
	repo    *repository.Repository
	allowed bool
	logger  *zap.Logger
}

// NewSeedService allowed 为 false 时 Seed 一律返回 ErrSeedForbidden
func NewSeedService(repo *repository.Repository, allowed bool, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, allowed: allowed, logger: logger}
}

func (s *seedService) Seed(ctx context.Context) (*dto.SeedResponse, error) {
	if !s.allowed {
		return nil, ErrSeedForbidden
	}

	data, err := loadSeedData(seedFile)
	if err != nil {
		return nil, err
	}

	resp := &dto.SeedResponse{
		SampleData: dto.SeedSampleData{
			Categories:      []dto.SeedItem{},
			Degrees:         []dto.SeedItem{},
			Specializations: []dto.SeedItem{},
		},
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Reference.Reset(ctx); err != nil {
			return err
		}

		// 1. 类别
		categories := make([]model.Category, 0, len(data.Categories))
		for _, c := range data.Categories {
			categories = append(categories, model.Category{Name: c.Name, Description: c.Description})
		}
		if err := tx.Reference.CreateCategories(ctx, categories); err != nil {
			return err
		}

		// 2. 学位
		degrees := make([]model.Degree, 0, len(data.Degrees))
		for _, d := range data.Degrees {
			degrees = append(degrees, model.Degree{Type: d.Type, Name: d.Name, Description: d.Description})
		}
		if err := tx.Reference.CreateDegrees(ctx, degrees); err != nil {
			return err
		}

		// 3. 专业方向，依赖已生成的学位主键
		var specs []model.Specialization
		for i, d := range data.Degrees {
			for _, sp := range d.Specializations {
				specs = append(specs, model.Specialization{
					DegreeID:    degrees[i].DegreeID,
					Name:        sp.Name,
					Code:        sp.Code,
					Description: sp.Description,
				})
			}
		}
		if len(specs) > 0 {
			if err := tx.Reference.CreateSpecializations(ctx, specs); err != nil {
				return err
			}
		}

		for _, c := range categories {
			resp.SampleData.Categories = append(resp.SampleData.Categories, dto.SeedItem{ID: c.CategoryID, Name: c.Name})
		}
		for _, d := range degrees {
			resp.SampleData.Degrees = append(resp.SampleData.Degrees, dto.SeedItem{ID: d.DegreeID, Name: d.Name, Type: d.Type})
		}
		for _, sp := range specs {
			resp.SampleData.Specializations = append(resp.SampleData.Specializations, dto.SeedItem{ID: sp.SpecializationID, Name: sp.Name, Code: sp.Code})
		}
		resp.Categories = len(categories)
		resp.Degrees = len(degrees)
		resp.Specializations = len(specs)
		return nil
	})
	if err != nil {
		s.logger.Error("重置种子数据失败", zap.Error(err))
		return nil, err
	}

	s.logger.Warn("种子数据已重置",
		zap.Int("categories", resp.Categories),
		zap.Int("degrees", resp.Degrees),
		zap.Int("specializations", resp.Specializations),
	)
	return resp, nil
}
