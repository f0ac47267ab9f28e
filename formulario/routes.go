// Admin API routes and handlers
package formulario

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/guivini-ac/site-timon-sub003/formulario/db"
	"github.com/guivini-ac/site-timon-sub003/formulario/export"
	"github.com/guivini-ac/site-timon-sub003/formulario/form"
)

// formPayload is the request body for creating and updating forms.
// Pointer fields distinguish "absent" from "zero" so PUT can merge
// partially.
type formPayload struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Slug        *string        `json:"slug"`
	Fields      *[]form.Field  `json:"fields"`
	Settings    *form.Settings `json:"settings"`
	Design      *form.Design   `json:"design"`
	IsActive    *bool          `json:"isActive"`
	IsPublic    *bool          `json:"isPublic"`
}

// setupWebRoutes sets up the admin API and the public form pages.
func (srv *Service) setupWebRoutes() {
	router := srv.web.Router
	router.StrictSlash(true)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/forms", srv.listForms).Methods("GET")
	api.HandleFunc("/forms", srv.createForm).Methods("POST")
	api.HandleFunc("/forms/{id:[0-9]+}", srv.getForm).Methods("GET")
	api.HandleFunc("/forms/{id:[0-9]+}", srv.updateForm).Methods("PUT")
	api.HandleFunc("/forms/{id:[0-9]+}", srv.deleteForm).Methods("DELETE")
	api.HandleFunc("/forms/{id:[0-9]+}/duplicate", srv.duplicateForm).Methods("POST")
	api.HandleFunc("/forms/{id:[0-9]+}/status", srv.toggleStatus).Methods("POST")
	api.HandleFunc("/forms/{id:[0-9]+}/visibility", srv.toggleVisibility).Methods("POST")
	api.HandleFunc("/forms/{id:[0-9]+}/submissions", srv.listSubmissions).Methods("GET")
	api.HandleFunc("/forms/{id:[0-9]+}/submissions/export", srv.exportSubmissions).Methods("GET")
	api.HandleFunc("/submissions/{id}/status", srv.updateSubmissionStatus).Methods("POST")
	api.HandleFunc("/field-types", srv.listFieldTypes).Methods("GET")
	api.HandleFunc("/stats", srv.stats).Methods("GET")

	router.HandleFunc("/f/{slug}", srv.renderPublicForm).Methods("GET")
	router.HandleFunc("/f/{slug}", srv.submitPublicForm).Methods("POST")

	router.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", http.FileServer(http.Dir("./assets"))))
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (srv *Service) listForms(w http.ResponseWriter, r *http.Request) {
	var forms []db.Form
	var err error
	switch {
	case r.URL.Query().Get("active") == "1":
		forms, err = srv.db.ActiveForms()
	case r.URL.Query().Get("public") == "1":
		forms, err = srv.db.PublicForms()
	default:
		forms, err = srv.db.AllForms()
	}
	if err != nil {
		log.Printf("Error listing forms: %v", err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao listar formulários")
		return
	}
	if forms == nil {
		forms = []db.Form{}
	}
	srv.web.JSONResponse(w, http.StatusOK, forms)
}

func (srv *Service) createForm(w http.ResponseWriter, r *http.Request) {
	var payload formPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		srv.web.JSONError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	draft := form.NewDraft()
	if payload.Title != nil {
		draft.SetTitle(*payload.Title)
	}
	applyPayload(draft, &payload)

	if err := draft.Validate(); err != nil {
		srv.web.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	frm := &db.Form{
		Title:       draft.Title,
		Description: draft.Description,
		Slug:        draft.Slug,
		Fields:      draft.Fields,
		Settings:    draft.Settings,
		Design:      draft.Design,
		IsActive:    draft.IsActive,
		IsPublic:    draft.IsPublic,
		CreatedBy:   srv.Config.CreatedBy,
	}
	if err := srv.db.InsertForm(frm); err != nil {
		log.Printf("Error inserting form: %v", err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao salvar formulário")
		return
	}
	srv.web.JSONResponse(w, http.StatusCreated, frm)
}

func (srv *Service) getForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	frm, err := srv.db.GetForm(id)
	if err != nil {
		log.Printf("Error reading form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao carregar formulário")
		return
	}
	if frm == nil {
		srv.web.JSONError(w, http.StatusNotFound, "formulário não encontrado")
		return
	}
	srv.web.JSONResponse(w, http.StatusOK, frm)
}

func (srv *Service) updateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	frm, err := srv.db.GetForm(id)
	if err != nil {
		log.Printf("Error reading form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao carregar formulário")
		return
	}
	if frm == nil {
		srv.web.JSONError(w, http.StatusNotFound, "formulário não encontrado")
		return
	}

	var payload formPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		srv.web.JSONError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	// Editing drafts keep the published slug even when the title
	// changes; an explicit slug in the payload overrides it.
	draft := form.EditDraft(frm.Title, frm.Description, frm.Slug, frm.Fields, frm.Settings, frm.Design, frm.IsActive, frm.IsPublic)
	if payload.Title != nil {
		draft.SetTitle(*payload.Title)
	}
	applyPayload(draft, &payload)

	if err := draft.Validate(); err != nil {
		srv.web.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if taken, err := srv.db.SlugInUse(draft.Slug, id); err != nil {
		log.Printf("Error checking slug %q: %v", draft.Slug, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao salvar formulário")
		return
	} else if taken {
		srv.web.JSONError(w, http.StatusUnprocessableEntity, "este endereço já está em uso por outro formulário")
		return
	}

	frm.Title = draft.Title
	frm.Description = draft.Description
	frm.Slug = draft.Slug
	frm.Fields = draft.Fields
	frm.Settings = draft.Settings
	frm.Design = draft.Design
	frm.IsActive = draft.IsActive
	frm.IsPublic = draft.IsPublic
	if err := srv.db.UpdateForm(frm); err != nil {
		log.Printf("Error updating form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao salvar formulário")
		return
	}
	srv.web.JSONResponse(w, http.StatusOK, frm)
}

// applyPayload copies the provided payload fields onto the draft.
// Title is handled separately by the callers so slug derivation runs
// through Draft.SetTitle.
func applyPayload(draft *form.Draft, payload *formPayload) {
	if payload.Description != nil {
		draft.Description = *payload.Description
	}
	if payload.Slug != nil && *payload.Slug != "" {
		draft.Slug = form.Slugify(*payload.Slug)
	}
	if payload.Fields != nil {
		draft.Fields = *payload.Fields
	}
	if payload.Settings != nil {
		draft.Settings = *payload.Settings
	}
	if payload.Design != nil {
		draft.Design = *payload.Design
	}
	if payload.IsActive != nil {
		draft.IsActive = *payload.IsActive
	}
	if payload.IsPublic != nil {
		draft.IsPublic = *payload.IsPublic
	}
}

func (srv *Service) deleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := srv.db.DeleteForm(id); err != nil {
		log.Printf("Error deleting form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao excluir formulário")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Service) duplicateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	clone, err := srv.db.DuplicateForm(id)
	if err != nil {
		log.Printf("Error duplicating form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao duplicar formulário")
		return
	}
	if clone == nil {
		srv.web.JSONError(w, http.StatusNotFound, "formulário não encontrado")
		return
	}
	srv.web.JSONResponse(w, http.StatusCreated, clone)
}

func (srv *Service) toggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := srv.db.ToggleActive(id); err != nil {
		log.Printf("Error toggling status of form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao alterar status")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Service) toggleVisibility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := srv.db.TogglePublic(id); err != nil {
		log.Printf("Error toggling visibility of form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao alterar visibilidade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Service) listSubmissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	frm, err := srv.db.GetForm(id)
	if err != nil || frm == nil {
		srv.web.JSONError(w, http.StatusNotFound, "formulário não encontrado")
		return
	}
	subs, err := srv.db.SubmissionsForForm(id)
	if err != nil {
		log.Printf("Error listing submissions of form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao listar respostas")
		return
	}

	query := r.URL.Query()
	filtered := filterSubmissions(subs, query.Get("q"), query.Get("status"))
	srv.web.JSONResponse(w, http.StatusOK, filtered)
}

// filterSubmissions applies the admin listing filters: free text
// matches submitter name/email or any stringified answer
// (case-insensitive substring); status is an exact match, with ""
// and "all" meaning no filter.
func filterSubmissions(subs []db.Submission, q, status string) []db.Submission {
	q = strings.ToLower(strings.TrimSpace(q))
	filtered := make([]db.Submission, 0, len(subs))
	for _, sub := range subs {
		if status != "" && status != "all" && string(sub.Status) != status {
			continue
		}
		if q != "" && !submissionMatches(sub, q) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered
}

func submissionMatches(sub db.Submission, q string) bool {
	if strings.Contains(strings.ToLower(sub.SubmitterName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(sub.SubmitterEmail), q) {
		return true
	}
	for _, value := range sub.Data {
		if strings.Contains(strings.ToLower(form.Stringify(value)), q) {
			return true
		}
	}
	return false
}

func (srv *Service) updateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload struct {
		Status db.Status `json:"status"`
		Notes  string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		srv.web.JSONError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if !payload.Status.Valid() {
		srv.web.JSONError(w, http.StatusBadRequest, "status desconhecido")
		return
	}

	sub, err := srv.db.GetSubmission(id)
	if err != nil {
		log.Printf("Error reading submission %s: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao carregar resposta")
		return
	}
	if sub == nil {
		srv.web.JSONError(w, http.StatusNotFound, "resposta não encontrada")
		return
	}
	if err := srv.db.UpdateSubmissionStatus(id, payload.Status, payload.Notes); err != nil {
		log.Printf("Error updating submission %s: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao atualizar resposta")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Service) exportSubmissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		srv.web.JSONError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	frm, err := srv.db.GetForm(id)
	if err != nil || frm == nil {
		srv.web.JSONError(w, http.StatusNotFound, "formulário não encontrado")
		return
	}
	subs, err := srv.db.SubmissionsForForm(id)
	if err != nil {
		log.Printf("Error exporting submissions of form %d: %v", id, err)
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao exportar respostas")
		return
	}

	csv := export.Build(frm, subs)
	if csv == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(frm.Slug))
	w.Write(csv)
}

func (srv *Service) listFieldTypes(w http.ResponseWriter, r *http.Request) {
	srv.web.JSONResponse(w, http.StatusOK, form.Types())
}

func (srv *Service) stats(w http.ResponseWriter, r *http.Request) {
	totalForms, err := srv.db.CountForms()
	if err != nil {
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao carregar estatísticas")
		return
	}
	totalSubmissions, err := srv.db.CountSubmissions()
	if err != nil {
		srv.web.JSONError(w, http.StatusInternalServerError, "erro ao carregar estatísticas")
		return
	}
	srv.web.JSONResponse(w, http.StatusOK, map[string]int64{
		"totalForms":       totalForms,
		"totalSubmissions": totalSubmissions,
	})
}
