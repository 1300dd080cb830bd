package usecase

import (
	"context"
	"math"
	"strconv"

	"github.com/landing/contacto-api/internal/entity"
)

const (
	DefaultPage        = 1
	DefaultLimit       = 5
	DefaultMaxPageSize = 100
)

type ListLeadsUseCase struct {
	Repo        entity.LeadRepositoryInterface
	MaxPageSize int
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface, maxPageSize int) *ListLeadsUseCase {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &ListLeadsUseCase{Repo: repo, MaxPageSize: maxPageSize}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*entity.LeadPage, error) {
	page := parsePositive(input.Page, DefaultPage)
	limit := parsePositive(input.Limit, DefaultLimit)
	if limit > uc.MaxPageSize {
		limit = uc.MaxPageSize
	}

	total, err := uc.Repo.Count(ctx)
	if err != nil {
		return nil, newServerError(CodeDatabase, err)
	}

	result := &entity.LeadPage{
		Leads:      []entity.Lead{},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}

	offset, ok := pageOffset(page, limit)
	if !ok {
		// no table holds that many rows
		return result, nil
	}

	leads, err := uc.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, newServerError(CodeDatabase, err)
	}
	if leads != nil {
		result.Leads = leads
	}
	return result, nil
}

// pageOffset returns (page-1)*limit, or false when the product overflows int.
func pageOffset(page, limit int) (int, bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// parsePositive falls back to def on anything that is not a positive integer.
func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
