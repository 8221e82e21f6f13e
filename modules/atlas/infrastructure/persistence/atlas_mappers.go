package persistence

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/citylingua/citylingua/modules/atlas/domain/classification"
	"github.com/citylingua/citylingua/modules/atlas/domain/district"
	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/infrastructure/persistence/models"
)

func toDomainLanguage(dbLanguage *models.Language) (*language.Language, error) {
	id, err := uuid.Parse(dbLanguage.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing language id")
	}
	cityID, err := uuid.Parse(dbLanguage.CityID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing language city id")
	}
	return language.New(
		cityID,
		dbLanguage.Slug,
		dbLanguage.NativeName,
		language.WithID(id),
		language.WithStatus(language.Status(dbLanguage.Status)),
		language.WithDisplayOrder(dbLanguage.DisplayOrder),
		language.WithCreatedAt(dbLanguage.CreatedAt),
		language.WithUpdatedAt(dbLanguage.UpdatedAt),
	), nil
}

func toDomainDistrict(dbDistrict *models.District) (*district.District, error) {
	id, err := uuid.Parse(dbDistrict.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing district id")
	}
	cityID, err := uuid.Parse(dbDistrict.CityID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing district city id")
	}
	opts := []district.Option{
		district.WithID(id),
		district.WithDisplayOrder(dbDistrict.DisplayOrder),
		district.WithCreatedAt(dbDistrict.CreatedAt),
		district.WithUpdatedAt(dbDistrict.UpdatedAt),
	}
	if dbDistrict.PrimaryLanguageID.Valid {
		languageID, err := uuid.Parse(dbDistrict.PrimaryLanguageID.String)
		if err != nil {
			return nil, errors.Wrap(err, "parsing district primary language id")
		}
		opts = append(opts, district.WithPrimaryLanguageID(&languageID))
	}
	return district.New(cityID, dbDistrict.Slug, opts...), nil
}

func toDomainClassificationType(dbType *models.ClassificationType) (*classification.Type, error) {
	id, err := uuid.Parse(dbType.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing classification type id")
	}
	cityID, err := uuid.Parse(dbType.CityID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing classification type city id")
	}
	return classification.NewType(
		cityID,
		dbType.Slug,
		classification.TypeWithID(id),
		classification.TypeWithRequired(dbType.Required),
		classification.TypeWithAllowMultiple(dbType.AllowMultiple),
		classification.TypeWithUsedForFiltering(dbType.UsedForFiltering),
		classification.TypeWithUsedForRenderingStyle(dbType.UsedForRenderingStyle),
		classification.TypeWithDisplayOrder(dbType.DisplayOrder),
		classification.TypeWithCreatedAt(dbType.CreatedAt),
		classification.TypeWithUpdatedAt(dbType.UpdatedAt),
	), nil
}

func toDomainClassificationValue(dbValue *models.ClassificationValue) (*classification.Value, error) {
	id, err := uuid.Parse(dbValue.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing classification value id")
	}
	typeID, err := uuid.Parse(dbValue.TypeID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing classification value type id")
	}
	return classification.NewValue(
		typeID,
		dbValue.Slug,
		dbValue.Color,
		dbValue.IconScale,
		classification.ValueWithID(id),
		classification.ValueWithIconReference(dbValue.IconReference.String),
		classification.ValueWithDisplayOrder(dbValue.DisplayOrder),
		classification.ValueWithCreatedAt(dbValue.CreatedAt),
		classification.ValueWithUpdatedAt(dbValue.UpdatedAt),
	)
}

func toDomainAssignment(dbAssignment *models.ClassificationAssignment) (*classification.Assignment, error) {
	entityID, err := uuid.Parse(dbAssignment.EntityID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing assignment entity id")
	}
	valueID, err := uuid.Parse(dbAssignment.ValueID)
	if err != nil {
		return nil, errors.Wrap(err, "parsing assignment value id")
	}
	a := classification.NewAssignment(entityID, valueID)
	return classification.AssignmentWithAssignedAt(a, dbAssignment.AssignedAt), nil
}
