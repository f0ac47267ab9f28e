package db

import (
	"fmt"
	"time"

	"github.com/guivini-ac/site-timon-sub003/formulario/form"
)

// Form holds one stored form schema.  Fields, settings, and design are
// serialized into JSON columns.
type Form struct {
	// Form ID (auto)
	ID int64 `xorm:"pk autoincr" json:"id"`
	// Title shown on the rendered form and in listings
	Title string `json:"title"`
	// Description shown under the title
	Description string `json:"description"`
	// URL-safe unique identifier, derived from the title
	Slug string `xorm:"unique" json:"slug"`
	// Ordered field definitions
	Fields []form.Field `xorm:"json" json:"fields"`
	// Submission behaviour
	Settings form.Settings `xorm:"json" json:"settings"`
	// Presentation parameters
	Design form.Design `xorm:"json" json:"design"`
	// Inactive forms accept no submissions
	IsActive bool `json:"isActive"`
	// Only public forms resolve through the slug lookup
	IsPublic bool `json:"isPublic"`
	// Live count of submissions referencing this form
	SubmissionCount int `json:"submissionCount"`
	// Author of the form
	CreatedBy string `json:"createdBy"`
	// Time when the form was first saved
	CreatedAt time.Time `json:"createdAt"`
	// Time of the last mutation
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertForm inserts a new form into the database.  Upon successful
// return the form has a new unique ID, fresh timestamps, a zero
// submission count, and a slug guaranteed unique across the store.
func (conn *Connection) InsertForm(frm *Form) error {
	now := time.Now()
	frm.CreatedAt = now
	frm.UpdatedAt = now
	frm.SubmissionCount = 0
	if frm.Slug == "" {
		frm.Slug = form.Slugify(frm.Title)
	}
	slug, err := conn.availableSlug(frm.Slug)
	if err != nil {
		return err
	}
	frm.Slug = slug
	_, err = conn.engine.Insert(frm) // form ID is assigned on insertion
	return err
}

// UpdateForm overwrites the stored form with the same ID and refreshes
// its UpdatedAt timestamp.  Updating an unknown ID affects no rows and
// returns nil; the admin surface calls this defensively.
func (conn *Connection) UpdateForm(frm *Form) error {
	frm.UpdatedAt = time.Now()
	_, err := conn.engine.ID(frm.ID).AllCols().Update(frm)
	return err
}

// DeleteForm removes the form and every submission referencing it.  The
// cascade runs in a single transaction: either both collections are
// cleaned up or neither is.  Deleting an unknown ID is a no-op.
func (conn *Connection) DeleteForm(id int64) error {
	session := conn.engine.NewSession()
	defer session.Close()
	if err := session.Begin(); err != nil {
		return err
	}
	if _, err := session.Delete(&Submission{FormID: id}); err != nil {
		session.Rollback()
		return err
	}
	if _, err := session.ID(id).Delete(new(Form)); err != nil {
		session.Rollback()
		return err
	}
	return session.Commit()
}

// ToggleActive flips the form's active flag.  No-op for unknown IDs.
func (conn *Connection) ToggleActive(id int64) error {
	frm, err := conn.GetForm(id)
	if err != nil || frm == nil {
		return err
	}
	frm.IsActive = !frm.IsActive
	return conn.UpdateForm(frm)
}

// TogglePublic flips the form's public flag.  No-op for unknown IDs.
func (conn *Connection) TogglePublic(id int64) error {
	frm, err := conn.GetForm(id)
	if err != nil || frm == nil {
		return err
	}
	frm.IsPublic = !frm.IsPublic
	return conn.UpdateForm(frm)
}

// DuplicateForm clones a form under a new ID with the title suffixed
// " (Cópia)" and the slug suffixed "-copia".  Duplicates start inactive
// with a zero submission count so a copy is never published silently.
// Returns the clone, or nil when the source ID is unknown.
func (conn *Connection) DuplicateForm(id int64) (*Form, error) {
	frm, err := conn.GetForm(id)
	if err != nil || frm == nil {
		return nil, err
	}
	clone := *frm
	clone.ID = 0
	clone.Title = frm.Title + " (Cópia)"
	clone.Slug = frm.Slug + "-copia"
	clone.IsActive = false
	clone.Fields = make([]form.Field, len(frm.Fields))
	copy(clone.Fields, frm.Fields)
	if err := conn.InsertForm(&clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// GetForm retrieves a form given its ID.  Returns nil without error
// when no form carries that ID.
func (conn *Connection) GetForm(id int64) (*Form, error) {
	frm := new(Form)
	frm.ID = id
	if has, err := conn.engine.Get(frm); err != nil {
		return nil, err
	} else if !has {
		return nil, nil
	}
	return frm, nil
}

// GetFormBySlug resolves a slug for the public render path.  Only forms
// that are both active and public resolve; everything else behaves as
// absent.  This gate is a visibility contract, not a convenience filter.
func (conn *Connection) GetFormBySlug(slug string) (*Form, error) {
	frm := Form{Slug: slug, IsActive: true, IsPublic: true}
	if has, err := conn.engine.Get(&frm); err != nil {
		return nil, err
	} else if !has {
		return nil, nil
	}
	return &frm, nil
}

// ActiveForms returns all active forms, most recently touched first.
func (conn *Connection) ActiveForms() ([]Form, error) {
	var forms []Form
	if err := conn.engine.Desc("updated_at").Find(&forms, Form{IsActive: true}); err != nil {
		return nil, err
	}
	return forms, nil
}

// PublicForms returns all forms flagged public.
func (conn *Connection) PublicForms() ([]Form, error) {
	var forms []Form
	if err := conn.engine.Desc("updated_at").Find(&forms, Form{IsPublic: true}); err != nil {
		return nil, err
	}
	return forms, nil
}

// AllForms returns every stored form, most recently touched first.
func (conn *Connection) AllForms() ([]Form, error) {
	var forms []Form
	if err := conn.engine.Desc("updated_at").Find(&forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// CountForms returns the total number of stored forms.
func (conn *Connection) CountForms() (int64, error) {
	return conn.engine.Count(new(Form))
}

// SlugInUse reports whether a form other than the given one already
// owns the slug.  Used to reject explicit slug edits before they hit
// the unique index.
func (conn *Connection) SlugInUse(slug string, excludeID int64) (bool, error) {
	frm := Form{Slug: slug}
	if has, err := conn.engine.Get(&frm); err != nil || !has {
		return false, err
	}
	return frm.ID != excludeID, nil
}

// availableSlug probes the store for the first free slug, appending
// numeric suffixes on collision ("slug", "slug-2", "slug-3", ...).
func (conn *Connection) availableSlug(slug string) (string, error) {
	candidate := slug
	for i := 2; ; i++ {
		has, err := conn.engine.Exist(&Form{Slug: candidate})
		if err != nil {
			return "", err
		}
		if !has {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}
