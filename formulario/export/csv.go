// Package export serializes form submissions for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/guivini-ac/site-timon-sub003/formulario/db"
	"github.com/guivini-ac/site-timon-sub003/formulario/form"
)

// ContentType is the MIME type of the generated file.
const ContentType = "text/csv;charset=utf-8"

// timeLayout formats submission timestamps the way the admin listing
// displays them.
const timeLayout = "02/01/2006 15:04:05"

// Build serializes the submissions of a form into CSV.  The header row
// is Data/Hora, Status, then the field labels in ascending schema
// order, skipping static fields.  One row follows per submission:
// status untranslated, array answers joined with "; ", answers for
// fields missing from a submission rendered as the empty string.  The
// output is byte-reproducible for the same input and nil when there are
// no submissions.
func Build(frm *db.Form, subs []db.Submission) []byte {
	if len(subs) == 0 {
		return nil
	}

	fields := exportFields(frm.Fields)
	header := make([]string, 0, len(fields)+2)
	header = append(header, "Data/Hora", "Status")
	for _, f := range fields {
		header = append(header, f.Label)
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	w.Write(header)
	for _, sub := range subs {
		row := make([]string, 0, len(header))
		row = append(row, sub.SubmittedAt.Format(timeLayout), string(sub.Status))
		for _, f := range fields {
			row = append(row, form.Stringify(sub.Data[f.ID]))
		}
		w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

// Filename returns the download name for a form's export.
func Filename(slug string) string {
	return fmt.Sprintf("%s-submissions.csv", slug)
}

// exportFields returns the answerable fields in render order.
func exportFields(fields []form.Field) []form.Field {
	answerable := make([]form.Field, 0, len(fields))
	for _, f := range form.SortFields(fields) {
		if f.Type.IsStatic() {
			continue
		}
		answerable = append(answerable, f)
	}
	return answerable
}
