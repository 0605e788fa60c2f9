package repository

import (
	"context"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

type ShelterRepository interface {
	UpsertShelters(ctx context.Context, shelters []models.Shelter) (int, error)
	ListShelters(ctx context.Context) ([]models.Shelter, error)
	CountShelters(ctx context.Context) (int, error)
}
