package db

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guivini-ac/site-timon-sub003/formulario/form"
)

func testConn(t *testing.T) *Connection {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "testdb")
	if err != nil {
		t.Fatalf("Failed to create temporary database file: %s", err.Error())
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	conn, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to initialise database connection to file %q: %s", tmpfile.Name(), err.Error())
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func testForm(title string) *Form {
	return &Form{
		Title:       title,
		Description: "Formulário de teste",
		Fields: []form.Field{
			{ID: "f1", Type: form.TextInput, Label: "Nome", Required: true, Order: 1},
			{ID: "f2", Type: form.EmailInput, Label: "E-mail", Order: 2},
		},
		Settings: form.DefaultSettings(),
		Design:   form.DefaultDesign(),
		IsActive: true,
		IsPublic: true,
	}
}

func TestInitEmpty(t *testing.T) {
	conn := testConn(t)

	forms, err := conn.AllForms()
	require.NoError(t, err)
	assert.Empty(t, forms)

	total, err := conn.CountSubmissions()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInsertFormDefaults(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Solicitação de Serviços!")
	require.NoError(t, conn.InsertForm(frm))

	assert.NotZero(t, frm.ID)
	assert.Equal(t, "solicitacao-de-servicos", frm.Slug)
	assert.Zero(t, frm.SubmissionCount)
	assert.False(t, frm.CreatedAt.IsZero())
	assert.Equal(t, frm.CreatedAt, frm.UpdatedAt)

	stored, err := conn.GetForm(frm.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, frm.Title, stored.Title)
	require.Len(t, stored.Fields, 2)
	assert.Equal(t, form.TextInput, stored.Fields[0].Type)
}

func TestSlugCollisions(t *testing.T) {
	conn := testConn(t)

	first := testForm("Ouvidoria")
	second := testForm("Ouvidoria")
	third := testForm("Ouvidoria")
	require.NoError(t, conn.InsertForm(first))
	require.NoError(t, conn.InsertForm(second))
	require.NoError(t, conn.InsertForm(third))

	assert.Equal(t, "ouvidoria", first.Slug)
	assert.Equal(t, "ouvidoria-2", second.Slug)
	assert.Equal(t, "ouvidoria-3", third.Slug)
}

func TestGetFormAbsent(t *testing.T) {
	conn := testConn(t)

	frm, err := conn.GetForm(999)
	require.NoError(t, err)
	assert.Nil(t, frm)

	frm, err = conn.GetFormBySlug("nada")
	require.NoError(t, err)
	assert.Nil(t, frm)
}

func TestVisibilityGating(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Carta de Serviços")
	require.NoError(t, conn.InsertForm(frm))

	found, err := conn.GetFormBySlug(frm.Slug)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, frm.ID, found.ID)

	// An inactive form no longer resolves through the slug even though
	// the ID lookup still succeeds.
	require.NoError(t, conn.ToggleActive(frm.ID))
	found, err = conn.GetFormBySlug(frm.Slug)
	require.NoError(t, err)
	assert.Nil(t, found)
	byID, err := conn.GetForm(frm.ID)
	require.NoError(t, err)
	assert.NotNil(t, byID)

	// Same for a private form.
	require.NoError(t, conn.ToggleActive(frm.ID))
	require.NoError(t, conn.TogglePublic(frm.ID))
	found, err = conn.GetFormBySlug(frm.Slug)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDuplicateForm(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Matrícula Escolar")
	require.NoError(t, conn.InsertForm(frm))
	require.NoError(t, conn.InsertSubmission(&Submission{FormID: frm.ID, Data: map[string]interface{}{"f1": "x"}}))

	clone, err := conn.DuplicateForm(frm.ID)
	require.NoError(t, err)
	require.NotNil(t, clone)

	assert.NotEqual(t, frm.ID, clone.ID)
	assert.Equal(t, "Matrícula Escolar (Cópia)", clone.Title)
	assert.Equal(t, "matricula-escolar-copia", clone.Slug)
	assert.False(t, clone.IsActive, "duplicates start inactive")
	assert.Zero(t, clone.SubmissionCount)
	assert.Len(t, clone.Fields, len(frm.Fields))

	// Duplicating twice must not collide on the slug.
	clone2, err := conn.DuplicateForm(frm.ID)
	require.NoError(t, err)
	require.NotNil(t, clone2)
	assert.Equal(t, "matricula-escolar-copia-2", clone2.Slug)

	// Unknown source is a no-op, not an error.
	missing, err := conn.DuplicateForm(12345)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateFormRefreshesTimestamp(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Atualizável")
	require.NoError(t, conn.InsertForm(frm))
	created := frm.CreatedAt

	frm.Title = "Atualizado"
	require.NoError(t, conn.UpdateForm(frm))

	stored, err := conn.GetForm(frm.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Atualizado", stored.Title)
	// sqlite stores timestamps at second resolution
	assert.False(t, stored.UpdatedAt.Before(created.Truncate(time.Second)))

	// Updating an unknown ID is a no-op.
	ghost := testForm("Fantasma")
	ghost.ID = 98765
	assert.NoError(t, conn.UpdateForm(ghost))
}

func TestSubmissionCountInvariant(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Contagem")
	require.NoError(t, conn.InsertForm(frm))

	var last *Submission
	for i := 0; i < 3; i++ {
		last = &Submission{FormID: frm.ID, Data: map[string]interface{}{"f1": "valor"}}
		require.NoError(t, conn.InsertSubmission(last))
		assert.NotEmpty(t, last.ID)
		assert.Equal(t, StatusPending, last.Status)
	}

	stored, err := conn.GetForm(frm.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.SubmissionCount)

	require.NoError(t, conn.DeleteSubmission(last.ID))
	stored, err = conn.GetForm(frm.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SubmissionCount)

	// Deleting an unknown submission changes nothing.
	require.NoError(t, conn.DeleteSubmission("unknown-id"))
	stored, err = conn.GetForm(frm.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.SubmissionCount)
}

func TestCascadingDelete(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Com Respostas")
	other := testForm("Outro")
	require.NoError(t, conn.InsertForm(frm))
	require.NoError(t, conn.InsertForm(other))

	for i := 0; i < 4; i++ {
		require.NoError(t, conn.InsertSubmission(&Submission{FormID: frm.ID, Data: map[string]interface{}{"f1": "a"}}))
	}
	require.NoError(t, conn.InsertSubmission(&Submission{FormID: other.ID, Data: map[string]interface{}{"f1": "b"}}))

	before, err := conn.CountSubmissions()
	require.NoError(t, err)

	require.NoError(t, conn.DeleteForm(frm.ID))

	after, err := conn.CountSubmissions()
	require.NoError(t, err)
	assert.Equal(t, before-4, after)

	gone, err := conn.GetForm(frm.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orphans, err := conn.SubmissionsForForm(frm.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	// The unrelated form keeps its submissions.
	kept, err := conn.SubmissionsForForm(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestUpdateSubmissionStatus(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Moderação")
	require.NoError(t, conn.InsertForm(frm))
	sub := &Submission{FormID: frm.ID, Data: map[string]interface{}{"f1": "olá"}}
	require.NoError(t, conn.InsertSubmission(sub))

	require.NoError(t, conn.UpdateSubmissionStatus(sub.ID, StatusApproved, "verificado"))
	stored, err := conn.GetSubmission(sub.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, StatusApproved, stored.Status)
	assert.Equal(t, "verificado", stored.Notes)

	// Any status may follow any other.
	require.NoError(t, conn.UpdateSubmissionStatus(sub.ID, StatusPending, ""))
	stored, err = conn.GetSubmission(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)

	// Unknown IDs are a safe no-op.
	assert.NoError(t, conn.UpdateSubmissionStatus("missing", StatusRejected, ""))
}

func TestActiveFormsOrdering(t *testing.T) {
	conn := testConn(t)

	first := testForm("Primeiro")
	second := testForm("Segundo")
	inactive := testForm("Inativo")
	inactive.IsActive = false
	require.NoError(t, conn.InsertForm(first))
	require.NoError(t, conn.InsertForm(second))
	require.NoError(t, conn.InsertForm(inactive))

	// Touch the first form so it becomes the most recently updated.
	// The pause keeps the ordering unambiguous at the second-resolution
	// timestamps sqlite stores.
	time.Sleep(1100 * time.Millisecond)
	first.Description = "atualizada"
	require.NoError(t, conn.UpdateForm(first))

	active, err := conn.ActiveForms()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
}

func TestHasSubmissionFromIP(t *testing.T) {
	conn := testConn(t)

	frm := testForm("Único Envio")
	require.NoError(t, conn.InsertForm(frm))
	require.NoError(t, conn.InsertSubmission(&Submission{FormID: frm.ID, IPAddress: "10.0.0.7", Data: map[string]interface{}{}}))

	has, err := conn.HasSubmissionFromIP(frm.ID, "10.0.0.7")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = conn.HasSubmissionFromIP(frm.ID, "10.0.0.8")
	require.NoError(t, err)
	assert.False(t, has)

	has, err = conn.HasSubmissionFromIP(frm.ID, "")
	require.NoError(t, err)
	assert.False(t, has)
}
