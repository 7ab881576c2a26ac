package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hansol-kim/building-ledger/internal/entity"
	"github.com/hansol-kim/building-ledger/internal/repository"
)

// buildingPayload is the JSON body for create and update. The shape matches
// the parse result so an extracted listing can be submitted as-is.
type buildingPayload struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	RoadFrontage string `json:"roadFrontage"`

	LandInfo      *entity.LandFields     `json:"landInfo"`
	BuildingInfo  *entity.BuildingFields `json:"buildingInfo"`
	PriceInfo     *entity.PriceFields    `json:"priceInfo"`
	Leases        []entity.LeaseRow      `json:"leases"`
	AnalysisScore map[string]*int        `json:"analysisScore"`
}

func (p *buildingPayload) toRequest() *repository.SaveBuildingRequest {
	return &repository.SaveBuildingRequest{
		Name:         p.Name,
		Address:      p.Address,
		RoadFrontage: p.RoadFrontage,
		LandInfo:     p.LandInfo,
		BuildingInfo: p.BuildingInfo,
		PriceInfo:    p.PriceInfo,
		Leases:       p.Leases,
		Ratings:      p.AnalysisScore,
	}
}

func (c *Controller) ListBuildings(ctx echo.Context) error {
	buildings, err := c.Repo.List(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "failed to list buildings", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, buildings)
}

func (c *Controller) GetBuilding(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "invalid building id", http.StatusBadRequest)
	}
	b, err := c.Repo.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.HandleError(ctx, err, "building not found", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, b)
}

func (c *Controller) CreateBuilding(ctx echo.Context) error {
	var payload buildingPayload
	if err := ctx.Bind(&payload); err != nil {
		return c.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
	}
	if payload.Name == "" {
		return c.HandleError(ctx, nil, "name is required", http.StatusBadRequest)
	}
	b, err := c.Repo.Create(ctx.Request().Context(), payload.toRequest())
	if err != nil {
		return c.HandleError(ctx, err, "failed to create building", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusCreated, b)
}

func (c *Controller) UpdateBuilding(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "invalid building id", http.StatusBadRequest)
	}
	var payload buildingPayload
	if err := ctx.Bind(&payload); err != nil {
		return c.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
	}
	if payload.Name == "" {
		return c.HandleError(ctx, nil, "name is required", http.StatusBadRequest)
	}
	b, err := c.Repo.Update(ctx.Request().Context(), id, payload.toRequest())
	if err != nil {
		return c.HandleError(ctx, err, "failed to update building", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, b)
}

func (c *Controller) DeleteBuilding(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "invalid building id", http.StatusBadRequest)
	}
	if err := c.Repo.Delete(ctx.Request().Context(), id); err != nil {
		return c.HandleError(ctx, err, "failed to delete building", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, map[string]uint{"deletedId": id})
}

func (c *Controller) UpsertAnalysisScore(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "invalid building id", http.StatusBadRequest)
	}
	var ratings map[string]*int
	if err := ctx.Bind(&ratings); err != nil {
		return c.HandleError(ctx, err, "invalid ratings body", http.StatusBadRequest)
	}
	score, err := c.Repo.UpsertScore(ctx.Request().Context(), id, ratings)
	if err != nil {
		return c.HandleError(ctx, err, "failed to save analysis score", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, score)
}

func (c *Controller) AddLease(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "invalid building id", http.StatusBadRequest)
	}
	var row entity.LeaseRow
	if err := ctx.Bind(&row); err != nil {
		return c.HandleError(ctx, err, "invalid lease body", http.StatusBadRequest)
	}
	lease, err := c.Repo.AddLease(ctx.Request().Context(), id, row)
	if err != nil {
		return c.HandleError(ctx, err, "failed to add lease", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusCreated, lease)
}

func (c *Controller) DeleteLease(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "invalid lease id", http.StatusBadRequest)
	}
	if err := c.Repo.DeleteLease(ctx.Request().Context(), id); err != nil {
		return c.HandleError(ctx, err, "failed to delete lease", http.StatusInternalServerError)
	}
	return respond(ctx, http.StatusOK, map[string]uint{"deletedId": id})
}

func (c *Controller) ExportBuildings(ctx echo.Context) error {
	data, err := c.Exporter.ExportBuildingsXLSX(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err, "failed to export buildings", http.StatusInternalServerError)
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="buildings.xlsx"`)
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseID(ctx echo.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
