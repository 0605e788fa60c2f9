package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-shelter-advisor/internal/hazard"
	"github.com/mr1hm/go-shelter-advisor/internal/models"
	"github.com/mr1hm/go-shelter-advisor/internal/recommend"
	"github.com/mr1hm/go-shelter-advisor/internal/shelter"
)

// ShelterSource provides the current enriched shelter list.
type ShelterSource interface {
	Shelters() []models.Shelter
	Get(id string) (models.Shelter, bool)
}

type Options struct {
	NearbyRadiusKm   float64
	BatchWorkers     int
	BatchMaxRequests int
}

type Handler struct {
	shelters ShelterSource
	hazards  *hazard.Store
	service  *recommend.Service
	opts     Options
	logger   *slog.Logger
}

func NewHandler(shelters ShelterSource, hazards *hazard.Store, service *recommend.Service, opts Options, logger *slog.Logger) *Handler {
	if opts.NearbyRadiusKm <= 0 {
		opts.NearbyRadiusKm = 50
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 4
	}
	if opts.BatchMaxRequests <= 0 {
		opts.BatchMaxRequests = 25
	}
	return &Handler{
		shelters: shelters,
		hazards:  hazards,
		service:  service,
		opts:     opts,
		logger:   logger.With("component", "api"),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/shelters", h.getShelters)
	api.GET("/shelters/:id", h.getShelter)
	api.GET("/hazards/nearby", h.getNearbyHazards)
	api.POST("/shelters/score", h.scoreShelters)
	api.POST("/recommendations", h.createRecommendation)
	api.POST("/recommendations/batch", h.createRecommendationBatch)
}

func (h *Handler) health(c *gin.Context) {
	resp := gin.H{
		"status":   "ok",
		"shelters": len(h.shelters.Shelters()),
	}
	if snap := h.hazards.Snapshot(); !snap.UpdatedAt.IsZero() {
		resp["hazards_updated_at"] = snap.UpdatedAt
	}
	c.JSON(http.StatusOK, resp)
}

type locatedShelter struct {
	models.Shelter
	DistanceKm float64 `json:"distance_km"`
}

// getShelters lists every shelter, or only those within radius_km of lat/lon
// (nearest first) when a location is given.
func (h *Handler) getShelters(c *gin.Context) {
	all := h.shelters.Shelters()
	if c.Query("lat") == "" && c.Query("lon") == "" {
		c.JSON(http.StatusOK, gin.H{"shelters": all, "count": len(all)})
		return
	}

	user, err := queryLocation(c)
	if err != nil {
		writeError(c, err)
		return
	}
	radius, err := queryRadius(c, shelter.DefaultNearbyRadiusKm)
	if err != nil {
		writeError(c, err)
		return
	}

	nearby := shelter.WithinRadius(all, user, radius)
	out := make([]locatedShelter, 0, len(nearby))
	for _, l := range nearby {
		out = append(out, locatedShelter{Shelter: l.Shelter, DistanceKm: l.DistanceKm})
	}
	c.JSON(http.StatusOK, gin.H{"shelters": out, "count": len(out), "radius_km": radius})
}

func (h *Handler) getShelter(c *gin.Context) {
	s, ok := h.shelters.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "shelter not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) getNearbyHazards(c *gin.Context) {
	user, err := queryLocation(c)
	if err != nil {
		writeError(c, err)
		return
	}
	radius, err := queryRadius(c, h.opts.NearbyRadiusKm)
	if err != nil {
		writeError(c, err)
		return
	}

	hazards, err := h.hazards.Nearby(&user, radius)
	if err != nil {
		writeError(c, err)
		return
	}

	if c.Query("format") == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, toGeoJSON(hazards))
		return
	}

	resp := gin.H{
		"hazards":   hazards,
		"count":     len(hazards),
		"radius_km": radius,
	}
	if snap := h.hazards.Snapshot(); !snap.UpdatedAt.IsZero() {
		resp["updated_at"] = snap.UpdatedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

type recommendRequest struct {
	DisasterType string   `json:"disaster_type"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
}

func (r recommendRequest) parse() (models.DisasterType, models.Location, error) {
	if r.Latitude == nil || r.Longitude == nil {
		return models.DisasterTypeNone, models.Location{}, fmt.Errorf("%w: latitude and longitude are required", models.ErrInvalidParameter)
	}
	dt, ok := models.ParseDisasterType(r.DisasterType)
	if !ok {
		return dt, models.Location{}, fmt.Errorf("%w: unknown disaster type %q", models.ErrInvalidParameter, r.DisasterType)
	}
	user := models.Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
	if err := user.Validate(); err != nil {
		return dt, user, err
	}
	return dt, user, nil
}

func (h *Handler) scoreShelters(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dt, user, err := req.parse()
	if err != nil {
		writeError(c, err)
		return
	}

	ranked, err := h.service.Score(dt, user, h.shelters.Shelters())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"disaster_type": dt,
		"shelters":      present(ranked),
	})
}

func (h *Handler) createRecommendation(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dt, user, err := req.parse()
	if err != nil {
		writeError(c, err)
		return
	}

	ranked, err := h.service.Recommend(c.Request.Context(), dt, user, h.shelters.Shelters())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendationBody(dt, ranked))
}

type batchRequest struct {
	Requests []recommendRequest `json:"requests" binding:"required"`
}

func (h *Handler) createRecommendationBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Requests) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no requests"})
		return
	}
	if len(req.Requests) > h.opts.BatchMaxRequests {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("batch of %d exceeds limit of %d", len(req.Requests), h.opts.BatchMaxRequests),
		})
		return
	}

	// items that fail to parse are answered directly; the rest go to the service
	items := make([]recommend.BatchItem, 0, len(req.Requests))
	slots := make([]int, 0, len(req.Requests))
	out := make([]gin.H, len(req.Requests))
	for i, r := range req.Requests {
		dt, user, err := r.parse()
		if err != nil {
			out[i] = gin.H{"error": err.Error()}
			continue
		}
		items = append(items, recommend.BatchItem{DisasterType: dt, User: user})
		slots = append(slots, i)
	}

	results := h.service.RecommendBatch(c.Request.Context(), items, h.shelters.Shelters(), h.opts.BatchWorkers)
	for j, res := range results {
		i := slots[j]
		if res.Err != nil {
			out[i] = gin.H{"error": res.Err.Error()}
			continue
		}
		out[i] = recommendationBody(items[j].DisasterType, res.Shelters)
	}

	c.JSON(http.StatusOK, gin.H{"results": out})
}

func recommendationBody(dt models.DisasterType, ranked []models.RankedShelter) gin.H {
	source := models.RankSourceFallback
	if len(ranked) > 0 {
		source = ranked[0].Source
	}
	return gin.H{
		"disaster_type": dt,
		"source":        source,
		"shelters":      present(ranked),
		"guidance":      recommend.Guidance(dt),
	}
}

func queryLocation(c *gin.Context) (models.Location, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w: lat must be a number", models.ErrInvalidParameter)
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w: lon must be a number", models.ErrInvalidParameter)
	}
	loc := models.Location{Latitude: lat, Longitude: lon}
	return loc, loc.Validate()
}

func queryRadius(c *gin.Context, def float64) (float64, error) {
	r := c.Query("radius_km")
	if r == "" {
		return def, nil
	}
	radius, err := strconv.ParseFloat(r, 64)
	if err != nil || radius <= 0 {
		return 0, fmt.Errorf("%w: radius_km must be a positive number", models.ErrInvalidParameter)
	}
	return radius, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate), errors.Is(err, models.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNoValidShelters):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
