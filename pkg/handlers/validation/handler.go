package validation

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/ai-foundry/pkg/adapters"
	"github.com/de-tools/ai-foundry/pkg/models/api"
	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/de-tools/ai-foundry/pkg/services/catalog"
	"github.com/de-tools/ai-foundry/pkg/services/envconfig"
	"github.com/de-tools/ai-foundry/pkg/services/validation"
)

const maxBodyBytes = 1 << 20

// Recorder observes finished validation runs.
type Recorder interface {
	Observe(summary *domain.ValidationSummary, elapsed time.Duration)
}

type Handler struct {
	engine   *validation.Engine
	loader   *envconfig.Loader
	catalog  *catalog.Catalog
	recorder Recorder
}

// NewHandler expects an engine built without a tool probe: requests are
// evaluated purely against the catalog.
func NewHandler(engine *validation.Engine, c *catalog.Catalog, recorder Recorder) *Handler {
	return &Handler{
		engine:   engine,
		loader:   envconfig.NewLoader(),
		catalog:  c,
		recorder: recorder,
	}
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	var req api.ValidateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("invalid validation request")
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "request body must be a JSON object with a configuration map"})
		return
	}

	// A configuration that fails to load is still answered with a report.
	var summary *domain.ValidationSummary
	if cfg, err := h.loader.Parse(req.Configuration); err != nil {
		summary = h.engine.LoadFailure(err)
	} else {
		summary = h.engine.Validate(ctx, cfg)
	}

	if h.recorder != nil {
		h.recorder.Observe(summary, time.Since(start))
	}
	logger.Info().
		Bool("valid", summary.IsValid).
		Int("errors", len(summary.Errors)).
		Int("warnings", len(summary.Warnings)).
		Msg("configuration validated")

	writeJSON(w, r, http.StatusOK, adapters.MapValidationSummaryDomainToApi(summary, req.Verbose))
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapCatalogToApi(h.catalog))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
