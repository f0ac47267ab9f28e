// Public form pages: render and submission processing
package formulario

import (
	"html/template"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/guivini-ac/site-timon-sub003/formulario/db"
	"github.com/guivini-ac/site-timon-sub003/formulario/form"
	"github.com/guivini-ac/site-timon-sub003/formulario/worker"
	"github.com/guivini-ac/site-timon-sub003/templates"
)

// FieldView is the template-facing shape of one rendered field.
type FieldView struct {
	ID          string
	Type        string
	Label       string
	Placeholder string
	Description string
	Required    bool
	Options     []form.FieldOption
	ShowIf      *form.Condition
	Content     template.HTML
	Value       string
	values      []string
	Error       string
}

// Selected reports whether a checkbox option value was submitted.
func (fv FieldView) Selected(value string) bool {
	for _, v := range fv.values {
		if v == value {
			return true
		}
	}
	return false
}

func (srv *Service) renderPublicForm(w http.ResponseWriter, r *http.Request) {
	frm, ok := srv.lookupPublicForm(w, r)
	if !ok {
		return
	}
	srv.renderFormPage(w, http.StatusOK, frm, nil, nil, "")
}

func (srv *Service) submitPublicForm(w http.ResponseWriter, r *http.Request) {
	frm, ok := srv.lookupPublicForm(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		log.Printf("Failed to parse submission for form %q: %v", frm.Slug, err)
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Não foi possível ler os dados enviados.")
		return
	}

	// Honeypot: bots fill the invisible field, humans never see it.
	if frm.Settings.CaptchaEnabled && r.PostForm.Get("website") != "" {
		srv.finishSubmission(w, r, frm)
		return
	}

	ip := clientIP(r)
	if !frm.Settings.AllowMultipleSubmissions {
		if has, err := srv.db.HasSubmissionFromIP(frm.ID, ip); err == nil && has {
			srv.web.ErrorResponse(w, http.StatusForbidden, "Já recebemos a sua resposta para este formulário.")
			return
		}
	}

	values := collectValues(frm.Fields, r)
	visible := form.VisibleFields(frm.Fields, values)

	errors := make(map[string]string)
	data := make(map[string]interface{})
	for _, f := range visible {
		if f.Type.IsStatic() {
			continue
		}
		value := values[f.ID]
		if err := form.ValidateField(f, value); err != nil {
			errors[f.ID] = err.Error()
			continue
		}
		if value != nil {
			data[f.ID] = value
		}
	}
	if len(errors) > 0 {
		srv.renderFormPage(w, http.StatusUnprocessableEntity, frm, values, errors, "Corrija os campos destacados e envie novamente.")
		return
	}

	sub := &db.Submission{
		FormID:    frm.ID,
		Data:      data,
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
	sub.SubmitterName, sub.SubmitterEmail = submitterIdentity(frm.Fields, data)
	if err := srv.db.InsertSubmission(sub); err != nil {
		log.Printf("Failed to store submission for form %q: %v", frm.Slug, err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Não foi possível registrar a sua resposta. Tente novamente.")
		return
	}

	if notify := frm.Settings.EmailNotification; notify != nil && notify.Enabled {
		srv.notifier.Enqueue(&worker.Notice{
			FormTitle:    frm.Title,
			Recipients:   notify.Recipients,
			Subject:      notify.Subject,
			SubmissionID: sub.ID,
			SubmittedAt:  sub.SubmittedAt,
		})
	}

	srv.finishSubmission(w, r, frm)
}

// lookupPublicForm resolves the slug and applies the submission guards
// shared by the render and submit paths.  Writes the error page and
// returns false when the form is unavailable.
func (srv *Service) lookupPublicForm(w http.ResponseWriter, r *http.Request) (*db.Form, bool) {
	slug := mux.Vars(r)["slug"]
	frm, err := srv.db.GetFormBySlug(slug)
	if err != nil {
		log.Printf("Error resolving form %q: %v", slug, err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar o formulário.")
		return nil, false
	}
	if frm == nil {
		srv.web.ErrorResponse(w, http.StatusNotFound, "Formulário não encontrado ou indisponível.")
		return nil, false
	}
	if !frm.Settings.Available(time.Now()) {
		srv.web.ErrorResponse(w, http.StatusForbidden, "Este formulário está fora do período de disponibilidade.")
		return nil, false
	}
	if limit := frm.Settings.SubmitLimit; limit > 0 && frm.SubmissionCount >= limit {
		srv.web.ErrorResponse(w, http.StatusForbidden, "Este formulário atingiu o limite de respostas.")
		return nil, false
	}
	return frm, true
}

// finishSubmission redirects when the form configures a redirect URL
// and renders the success page otherwise.
func (srv *Service) finishSubmission(w http.ResponseWriter, r *http.Request, frm *db.Form) {
	if url := frm.Settings.RedirectURL; url != "" {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return
	}

	tmpl := template.New("layout")
	tmpl, err := tmpl.Parse(templates.Layout)
	if err == nil {
		tmpl, err = tmpl.Parse(templates.Success)
	}
	if err != nil {
		log.Printf("Failed to parse success template: %v", err)
		w.Write([]byte(frm.Settings.SuccessMessage))
		return
	}
	data := map[string]interface{}{
		"title":   frm.Title,
		"form":    frm,
		"design":  frm.Design,
		"message": frm.Settings.SuccessMessage,
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Failed to render success page: %v", err)
	}
}

func (srv *Service) renderFormPage(w http.ResponseWriter, status int, frm *db.Form, values map[string]interface{}, errors map[string]string, notice string) {
	tmpl := template.New("layout")
	tmpl, err := tmpl.Parse(templates.Layout)
	if err == nil {
		tmpl, err = tmpl.Parse(templates.Form)
	}
	if err != nil {
		log.Printf("Failed to parse form template: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Erro ao montar o formulário.")
		return
	}

	data := map[string]interface{}{
		"title":    frm.Title,
		"form":     frm,
		"design":   frm.Design,
		"fields":   fieldViews(frm.Fields, values, errors),
		"honeypot": frm.Settings.CaptchaEnabled,
		"notice":   notice,
	}
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Failed to render form %q: %v", frm.Slug, err)
	}
}

// fieldViews prepares the sorted, visibility-annotated template views.
// All fields are emitted (conditional ones included) so the client
// script can toggle them; prior values and validation errors are
// attached for re-rendering after a rejected submission.
func fieldViews(fields []form.Field, values map[string]interface{}, errors map[string]string) []FieldView {
	views := make([]FieldView, 0, len(fields))
	for _, f := range form.SortFields(fields) {
		view := FieldView{
			ID:          f.ID,
			Type:        string(f.Type),
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Description: f.Description,
			Required:    f.Required,
			Options:     f.Options,
			ShowIf:      f.ShowIf,
			Error:       errors[f.ID],
		}
		if f.Type == form.HTMLBlock {
			view.Content = template.HTML(f.Content)
		}
		switch v := values[f.ID].(type) {
		case string:
			view.Value = v
		case []string:
			view.values = v
		}
		views = append(views, view)
	}
	return views
}

// collectValues extracts the posted answers keyed by field ID.
// Checkbox groups keep all submitted values; everything else takes the
// first.  Unanswered fields are absent from the map.
func collectValues(fields []form.Field, r *http.Request) map[string]interface{} {
	values := make(map[string]interface{})
	for _, f := range fields {
		if f.Type.IsStatic() {
			continue
		}
		if f.Type == form.CheckboxGroup {
			if vals := r.PostForm[f.ID]; len(vals) > 0 {
				values[f.ID] = vals
			}
			continue
		}
		if v := r.PostForm.Get(f.ID); v != "" {
			values[f.ID] = v
		}
	}
	return values
}

// submitterIdentity pulls optional identity hints out of the answers:
// the first email answer and the first text answer labelled as a name.
func submitterIdentity(fields []form.Field, data map[string]interface{}) (name, email string) {
	for _, f := range form.SortFields(fields) {
		value, ok := data[f.ID].(string)
		if !ok || value == "" {
			continue
		}
		if email == "" && f.Type == form.EmailInput {
			email = value
		}
		if name == "" && f.Type == form.TextInput && strings.Contains(strings.ToLower(f.Label), "nome") {
			name = value
		}
	}
	return name, email
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
