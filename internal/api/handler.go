package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/importer"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/service"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	plans       service.PlanService
	simulations service.SimulationService
	profiles    service.ProfileService
	logger      *slog.Logger
}

func NewHandler(plans service.PlanService, simulations service.SimulationService, profiles service.ProfileService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{plans: plans, simulations: simulations, profiles: profiles, logger: logger}
}

func jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}

// validationResponse lists every problem of a rejected input file.
func validationResponse(w http.ResponseWriter, verr *importer.ValidationError) {
	problems := make([]string, 0, len(verr.Problems))
	for _, p := range verr.Problems {
		problems = append(problems, p.Error())
	}
	jsonResponse(w, map[string]any{"error": "validation failed", "problems": problems}, http.StatusBadRequest)
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and hidden from the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *importer.ValidationError
	switch {
	case errors.As(err, &verr):
		validationResponse(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrAlreadyExists):
		errorResponse(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidInput):
		errorResponse(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(r.Context(), "request_failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		errorResponse(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding request body: %w: %w", service.ErrInvalidInput, err)
	}
	return nil
}

// === System ===

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// === Plans ===

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toPlanSummaryViews(plans), http.StatusOK)
}

// CreatePlan accepts a planning file in its JSON form.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var f importer.PlanFile
	if err := decodeBody(w, r, &f); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := importer.AsError(importer.ValidatePlanFile(&f, "")); err != nil {
		h.fail(w, r, err)
		return
	}
	in, err := importer.ConvertPlan(&f, "")
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: %w", service.ErrInvalidInput, err))
		return
	}
	if f.ProfileName != "" {
		profile, err := h.profiles.Get(r.Context(), f.ProfileName)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		in.Profile = *profile
	}

	plan, err := h.plans.Generate(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toPlanView(plan), http.StatusCreated)
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plans.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toPlanView(plan), http.StatusOK)
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.plans.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PlanStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.plans.Status(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toStatusView(status), http.StatusOK)
}

func (h *Handler) PlanToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.plans.Today(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toDayView(day), http.StatusOK)
}

func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	plan, err := h.plans.ToggleTask(r.Context(), vars["id"], vars["dayID"], vars["taskID"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toPlanView(plan), http.StatusOK)
}

// === Simulations ===

type createSimulationRequest struct {
	ProfileName string                `json:"profile_name,omitempty"`
	Profile     *importer.ProfileFile `json:"profile,omitempty"`
	Topics      []string              `json:"topics"`
}

type scoreRequest struct {
	Answers map[string]string `json:"answers"`
}

func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	sims, err := h.simulations.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toSimulationSummaryViews(sims), http.StatusOK)
}

func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req createSimulationRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	var profile domain.ExaminationProfile
	switch {
	case req.ProfileName != "" && req.Profile != nil:
		h.fail(w, r, fmt.Errorf("profile and profile_name are mutually exclusive: %w", service.ErrInvalidInput))
		return
	case req.ProfileName != "":
		stored, err := h.profiles.Get(r.Context(), req.ProfileName)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		profile = *stored
	case req.Profile != nil:
		profile = importer.ConvertProfile(req.Profile)
	default:
		profile = domain.DefaultExaminationProfile()
	}

	sim, err := h.simulations.Generate(r.Context(), profile, req.Topics)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toSimulationView(sim, false), http.StatusCreated)
}

// GetSimulation includes correct answers only with ?answers=true.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	withAnswers, _ := strconv.ParseBool(r.URL.Query().Get("answers"))
	sim, err := h.simulations.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toSimulationView(sim, withAnswers), http.StatusOK)
}

func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	if err := h.simulations.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ScoreSimulation(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	report, err := h.simulations.Score(r.Context(), mux.Vars(r)["id"], req.Answers)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toScoreView(report), http.StatusOK)
}

// === Profiles ===

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileView(p))
	}
	jsonResponse(w, out, http.StatusOK)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toProfileView(p), http.StatusOK)
}

// PutProfile stores the body under the name in the path; a name in the body
// must agree with it.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var f importer.ProfileFile
	if err := decodeBody(w, r, &f); err != nil {
		h.fail(w, r, err)
		return
	}
	if f.Name != "" && strings.TrimSpace(f.Name) != strings.TrimSpace(name) {
		h.fail(w, r, fmt.Errorf("profile name %q does not match path %q: %w", f.Name, name, service.ErrInvalidInput))
		return
	}
	f.Name = name

	p := importer.ConvertProfile(&f)
	if err := h.profiles.Save(r.Context(), &p); err != nil {
		h.fail(w, r, err)
		return
	}
	jsonResponse(w, toProfileView(&p), http.StatusOK)
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
