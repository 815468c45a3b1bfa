package devserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/five82/petgallery/internal/petstore"
)

// DefaultBasePath matches the path prefix of the production backend.
const DefaultBasePath = "/mingoy"

// Options configure the development backend.
type Options struct {
	BasePath   string
	Logger     *zap.Logger
	Repository *Repository
}

// Handler serves the pet REST surface from a Repository.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// New builds the gin engine serving the pet endpoints under opts.BasePath.
func New(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := opts.Repository
	if repo == nil {
		repo = NewRepository()
	}
	basePath := "/" + strings.Trim(strings.TrimSpace(opts.BasePath), "/")
	if opts.BasePath == "" {
		basePath = DefaultBasePath
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(allowAllOrigins())

	h := &Handler{repo: repo, logger: logger}
	h.RegisterRoutes(router.Group(basePath))
	return router
}

// RegisterRoutes registers the pet routes on r.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	pets := r.Group("/pets")
	{
		pets.GET("", h.ListPets)
		pets.POST("", h.CreatePet)
		pets.POST("/bulk", h.CreatePetsBulk)
		pets.GET("/:id", h.GetPet)
		pets.PUT("/:id", h.UpdatePet)
		pets.DELETE("/:id", h.DeletePet)
	}
}

// ListPets returns every pet as a JSON array.
func (h *Handler) ListPets(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.List())
}

// GetPet returns one pet, or an empty 404.
func (h *Handler) GetPet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pet, found := h.repo.Get(id)
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// CreatePet stores a new pet and answers 201 with the stored record.
func (h *Handler) CreatePet(c *gin.Context) {
	var pet petstore.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if !hasRequiredFields(pet) {
		c.Status(http.StatusBadRequest)
		return
	}

	created := h.repo.Create(pet)
	h.logger.Info("pet created", zap.Int64("id", created.IDValue()), zap.String("name", created.Name))
	c.JSON(http.StatusCreated, created)
}

// CreatePetsBulk stores every pet in a JSON array and answers 201 with the
// stored records. Entries without a name or species are skipped; an empty or
// invalid body is a 400.
func (h *Handler) CreatePetsBulk(c *gin.Context) {
	var pets []petstore.Pet
	if err := c.ShouldBindJSON(&pets); err != nil || len(pets) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	saved := make([]petstore.Pet, 0, len(pets))
	for _, pet := range pets {
		if !hasRequiredFields(pet) {
			continue
		}
		saved = append(saved, h.repo.Create(pet))
	}
	h.logger.Info("pets created in bulk", zap.Int("received", len(pets)), zap.Int("saved", len(saved)))
	c.JSON(http.StatusCreated, saved)
}

// UpdatePet overwrites a pet and answers with a plain-text confirmation.
func (h *Handler) UpdatePet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var pet petstore.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		c.String(http.StatusBadRequest, "Invalid pet body.")
		return
	}
	if _, found := h.repo.Update(id, pet); !found {
		c.String(http.StatusNotFound, notFoundText(id))
		return
	}
	h.logger.Info("pet updated", zap.Int64("id", id))
	c.String(http.StatusOK, fmt.Sprintf("Pet with id %d updated.", id))
}

// DeletePet removes a pet and answers with a plain-text confirmation.
func (h *Handler) DeletePet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.repo.Delete(id) {
		c.String(http.StatusNotFound, notFoundText(id))
		return
	}
	h.logger.Info("pet deleted", zap.Int64("id", id))
	c.String(http.StatusOK, fmt.Sprintf("Pet with id %d deleted.", id))
}

func hasRequiredFields(p petstore.Pet) bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Species) != ""
}

func notFoundText(id int64) string {
	return fmt.Sprintf("Pet with ID %d not found.", id)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid pet id.")
		return 0, false
	}
	return id, true
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetHeader("X-Request-Id")),
		)
	}
}

// allowAllOrigins lets a browser frontend on another port call the API.
func allowAllOrigins() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
