package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"

	"go-import-pipeline/internal/decoder"
	"go-import-pipeline/internal/model"
	"go-import-pipeline/internal/pipeline"
	"go-import-pipeline/internal/store"
	"go-import-pipeline/pkg/router"
)

// Handler serves the import API. Live coordinators are kept in memory per
// batch id until their run reaches a terminal state.
type Handler struct {
	DB       *store.DB
	Mappings *store.Mappings
	Catalog  *pipeline.Catalog

	mu   sync.Mutex
	runs map[string]*pipeline.Coordinator
}

// New returns an API handler wired to its collaborators.
func New(db *store.DB, mappings *store.Mappings, catalog *pipeline.Catalog) *Handler {
	return &Handler{
		DB:       db,
		Mappings: mappings,
		Catalog:  catalog,
		runs:     make(map[string]*pipeline.Coordinator),
	}
}

func (h *Handler) run(id string) (*pipeline.Coordinator, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.runs[id]
	return c, ok
}

// CreateImport uploads a tabular file and starts an import run
// @Summary Start an import
// @Description Decode an uploaded CSV/XLSX file and suspend at mapping confirmation
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Tabular source file"
// @Param entity formData string true "Target entity key"
// @Param mode formData string false "Import mode: append or overwrite"
// @Success 200 {object} map[string]interface{} "Batch created, mapping suggested"
// @Failure 400 {object} map[string]interface{} "Invalid upload"
// @Router /imports [post]
func (h *Handler) CreateImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A source file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	entity, ok := model.EntityByKey(r.FormValue("entity"))
	if !ok {
		http.Error(w, "Unknown entity", http.StatusBadRequest)
		return
	}
	mode := model.ImportMode(r.FormValue("mode"))
	if mode == "" {
		mode = model.ModeAppend
	}
	if mode != model.ModeAppend && mode != model.ModeOverwrite {
		http.Error(w, "Mode must be append or overwrite", http.StatusBadRequest)
		return
	}

	sheet, err := decoder.DecodeReader(file, filepath.Ext(header.Filename), entity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	coord := pipeline.NewCoordinator(entity, h.DB, h.Mappings, h.Catalog)
	if err := coord.Begin(sheet, mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	batch := coord.Batch()
	if err := h.DB.SaveBatch(batch, "mapping"); err != nil {
		http.Error(w, "Failed to record batch", http.StatusInternalServerError)
		return
	}
	// keep the batches table in step with the run's outcome
	coord.Notify(func(ev model.Event) {
		if ev.Type == model.EventInsert {
			h.DB.UpdateBatchStatus(batch.ID, "committed", ev.Count)
		}
	})

	h.mu.Lock()
	h.runs[batch.ID] = coord
	h.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"id":               batch.ID,
		"state":            coord.State(),
		"pendingAction":    coord.PendingAction(),
		"columns":          sheet.Columns,
		"rowCount":         len(sheet.Rows),
		"suggestedMapping": coord.SuggestedMapping(),
		"missingRequired":  coord.MissingRequired(),
	})
}

// ListImports lists recorded import batches
// @Summary List imports
// @Tags imports
// @Produce json
// @Success 200 {array} map[string]interface{} "Batches"
// @Router /imports [get]
func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	batches, err := h.DB.ListBatches()
	if err != nil {
		http.Error(w, "Failed to list batches", http.StatusInternalServerError)
		return
	}
	writeJSON(w, batches)
}

// GetImport reports the state of one import run
// @Summary Get import state
// @Tags imports
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{} "Run state"
// @Failure 404 {object} map[string]interface{} "Unknown batch"
// @Router /imports/{id} [get]
func (h *Handler) GetImport(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.run(router.Param(r, 3))
	if !ok {
		http.Error(w, "Import not found", http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{
		"state":         coord.State(),
		"pendingAction": coord.PendingAction(),
	}
	if err := coord.Err(); err != nil {
		resp["error"] = err.Error()
	}
	if coord.State() == model.StateMappingSuggested {
		resp["suggestedMapping"] = coord.SuggestedMapping()
		resp["missingRequired"] = coord.MissingRequired()
	}
	if coord.State() == model.StateKeyResolutionPending {
		resp["keyFields"] = coord.KeyFields()
	}
	writeJSON(w, resp)
}

// ConfirmMapping resumes a run suspended at mapping confirmation
// @Summary Confirm mapping
// @Description Confirm the field mapping; an empty body accepts the suggestion
// @Tags imports
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Param mapping body model.MappingSet false "Confirmed mapping"
// @Success 200 {object} map[string]interface{} "Run resumed"
// @Failure 422 {object} map[string]interface{} "Mapping incomplete"
// @Router /imports/{id}/mapping [post]
func (h *Handler) ConfirmMapping(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.run(router.Param(r, 3))
	if !ok {
		http.Error(w, "Import not found", http.StatusNotFound)
		return
	}

	var set model.MappingSet
	if r.Body != nil {
		// empty or absent body accepts the suggested mapping
		json.NewDecoder(r.Body).Decode(&set)
	}

	err := coord.ConfirmMapping(r.Context(), set)
	if incomplete, ok := err.(*model.IncompleteMappingError); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(w, map[string]interface{}{
			"state":           coord.State(),
			"missingRequired": incomplete.Missing,
			"error":           incomplete.Error(),
		})
		return
	}
	h.respondRunState(w, coord, err)
}

// ConfirmKeys resumes a run suspended on duplicate keys
// @Summary Confirm duplicate-key fields
// @Tags imports
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Param spec body model.DuplicateKeySpec false "Key field override"
// @Success 200 {object} map[string]interface{} "Run resumed"
// @Router /imports/{id}/keys [post]
func (h *Handler) ConfirmKeys(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.run(router.Param(r, 3))
	if !ok {
		http.Error(w, "Import not found", http.StatusNotFound)
		return
	}

	var spec model.DuplicateKeySpec
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&spec)
	}
	err := coord.ConfirmKeyFields(r.Context(), spec.Fields)
	h.respondRunState(w, coord, err)
}

// CancelImport discards a suspended run
// @Summary Cancel an import
// @Tags imports
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{} "Run cancelled"
// @Router /imports/{id}/cancel [post]
func (h *Handler) CancelImport(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, 3)
	coord, ok := h.run(id)
	if !ok {
		http.Error(w, "Import not found", http.StatusNotFound)
		return
	}
	if err := coord.Cancel(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	h.DB.UpdateBatchStatus(id, "cancelled", 0)
	writeJSON(w, map[string]interface{}{"state": coord.State()})
}

// GetImportErrors returns per-row validation messages
// @Summary Get import row errors
// @Tags imports
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{} "Row errors"
// @Router /imports/{id}/errors [get]
func (h *Handler) GetImportErrors(w http.ResponseWriter, r *http.Request) {
	coord, ok := h.run(router.Param(r, 3))
	if !ok {
		http.Error(w, "Import not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]interface{}{"rowErrors": coord.RowErrors()})
}

// ListTransforms lists transforms available for a target field
// @Summary List transforms
// @Tags catalog
// @Produce json
// @Param field query string true "Target field key"
// @Success 200 {array} pipeline.TransformInfo "Transforms"
// @Router /transforms [get]
func (h *Handler) ListTransforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Catalog.ListTransforms(r.URL.Query().Get("field")))
}

// ListEntities lists the registered import targets
// @Summary List entities
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]model.Entity "Entities"
// @Router /entities [get]
func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, model.Entities)
}

func (h *Handler) respondRunState(w http.ResponseWriter, coord *pipeline.Coordinator, err error) {
	resp := map[string]interface{}{
		"state":         coord.State(),
		"pendingAction": coord.PendingAction(),
	}
	if err != nil {
		resp["error"] = err.Error()
		if len(coord.RowErrors()) > 0 {
			resp["rowErrors"] = coord.RowErrors()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
	} else if batch := coord.Batch(); batch != nil && coord.State() == model.StateDone {
		resp["rowCount"] = len(batch.Rows)
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
