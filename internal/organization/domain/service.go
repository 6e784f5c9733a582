package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	GetByID(ctx context.Context, id snowflake.ID) (*Organization, error)
}

var (
	ErrNotFound = errors.New("organization not found")
)
