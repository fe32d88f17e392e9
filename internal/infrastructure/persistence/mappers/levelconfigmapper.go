package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/infrastructure/persistence/models"
)

// LevelConfigMapper converts between level config rows and domain objects.
// The permission column is decoded here and nowhere else.
type LevelConfigMapper interface {
	ToDomain(model *models.LevelConfigModel) (*levelconfig.LevelConfig, error)
	ToModel(domain *levelconfig.LevelConfig) (*models.LevelConfigModel, error)
	ToDomainList(modelList []*models.LevelConfigModel) ([]*levelconfig.LevelConfig, error)
}

// LevelConfigMapperImpl implements LevelConfigMapper
type LevelConfigMapperImpl struct{}

// NewLevelConfigMapper creates a new LevelConfigMapper
func NewLevelConfigMapper() LevelConfigMapper {
	return &LevelConfigMapperImpl{}
}

// ToDomain converts a LevelConfigModel to a LevelConfig domain entity
func (m *LevelConfigMapperImpl) ToDomain(model *models.LevelConfigModel) (*levelconfig.LevelConfig, error) {
	if model == nil {
		return nil, nil
	}

	perms, err := levelconfig.DecodePermissions(model.Permissions)
	if err != nil {
		return nil, fmt.Errorf("level config rank %d: %w", model.Rank, err)
	}

	return levelconfig.ReconstructLevelConfig(
		model.ID,
		level.Of(model.Rank),
		levelconfig.Display{
			Name:        model.Name,
			Description: model.Description,
			Color:       model.Color,
			Icon:        model.Icon,
		},
		perms,
		model.UploadQuota,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

// ToModel converts a LevelConfig domain entity to a LevelConfigModel
func (m *LevelConfigMapperImpl) ToModel(domain *levelconfig.LevelConfig) (*models.LevelConfigModel, error) {
	if domain == nil {
		return nil, nil
	}

	perms, err := domain.Permissions().Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}

	return &models.LevelConfigModel{
		ID:          domain.ID(),
		Rank:        domain.Rank().Int(),
		Name:        domain.Name(),
		Description: domain.Description(),
		Color:       domain.Color(),
		Icon:        domain.Icon(),
		Permissions: datatypes.JSON(perms),
		UploadQuota: domain.UploadQuota(),
		Version:     domain.Version(),
		CreatedAt:   domain.CreatedAt(),
		UpdatedAt:   domain.UpdatedAt(),
	}, nil
}

// ToDomainList converts a list of models. A row that cannot be decoded fails the list.
func (m *LevelConfigMapperImpl) ToDomainList(modelList []*models.LevelConfigModel) ([]*levelconfig.LevelConfig, error) {
	domains := make([]*levelconfig.LevelConfig, 0, len(modelList))
	for _, model := range modelList {
		d, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		if d != nil {
			domains = append(domains, d)
		}
	}
	return domains, nil
}
