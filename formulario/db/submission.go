package db

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Status is the moderation state of a submission.  Transitions are
// unconstrained: any status may follow any other.
type Status string

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission holds one visitor's answers to a form.  Keys of Data are
// field IDs of the owning form's schema as it stood at submission time;
// schema changes do not migrate historical submissions.
type Submission struct {
	// Submission ID
	ID string `xorm:"pk" json:"id"`
	// ID of the owning form
	FormID int64 `xorm:"index" json:"formId"`
	// Answers keyed by field ID
	Data map[string]interface{} `xorm:"json" json:"data"`
	// Time when the submission was received
	SubmittedAt time.Time `json:"submittedAt"`
	// Optional identity hints extracted from the answers
	SubmitterName  string `json:"submitterName,omitempty"`
	SubmitterEmail string `json:"submitterEmail,omitempty"`
	// Request metadata
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	// Moderation state
	Status Status `json:"status"`
	// Free-form moderation notes
	Notes string `json:"notes,omitempty"`
}

// InsertSubmission stores a new submission with a fresh unique ID and
// increments the owning form's submission count in the same
// transaction, keeping the count equal to the number of stored
// submissions at all times.
func (conn *Connection) InsertSubmission(sub *Submission) error {
	sub.ID = uuid.New().String()
	sub.SubmittedAt = time.Now()
	if sub.Status == "" {
		sub.Status = StatusPending
	}

	session := conn.engine.NewSession()
	defer session.Close()
	if err := session.Begin(); err != nil {
		return err
	}
	if _, err := session.Insert(sub); err != nil {
		session.Rollback()
		return err
	}
	if _, err := session.ID(sub.FormID).Incr("submission_count").Update(new(Form)); err != nil {
		session.Rollback()
		return err
	}
	return session.Commit()
}

// DeleteSubmission removes a submission and decrements the owning
// form's submission count.  No-op for unknown IDs.
func (conn *Connection) DeleteSubmission(id string) error {
	sub := Submission{ID: id}
	if has, err := conn.engine.Get(&sub); err != nil {
		return err
	} else if !has {
		return nil
	}

	session := conn.engine.NewSession()
	defer session.Close()
	if err := session.Begin(); err != nil {
		return err
	}
	if _, err := session.ID(id).Delete(new(Submission)); err != nil {
		session.Rollback()
		return err
	}
	if _, err := session.ID(sub.FormID).Decr("submission_count").Update(new(Form)); err != nil {
		session.Rollback()
		return err
	}
	return session.Commit()
}

// GetSubmission retrieves a submission given its ID.  Returns nil
// without error when absent.
func (conn *Connection) GetSubmission(id string) (*Submission, error) {
	sub := new(Submission)
	sub.ID = id
	if has, err := conn.engine.Get(sub); err != nil {
		return nil, err
	} else if !has {
		return nil, nil
	}
	return sub, nil
}

// UpdateSubmissionStatus sets the moderation status and notes of a
// submission.  No-op for unknown IDs.
func (conn *Connection) UpdateSubmissionStatus(id string, status Status, notes string) error {
	sub, err := conn.GetSubmission(id)
	if err != nil || sub == nil {
		return err
	}
	sub.Status = status
	sub.Notes = notes
	_, err = conn.engine.ID(id).Cols("status", "notes").Update(sub)
	return err
}

// SubmissionsForForm retrieves all submissions of a form, newest first.
func (conn *Connection) SubmissionsForForm(formID int64) ([]Submission, error) {
	var subs []Submission
	if err := conn.engine.Desc("submitted_at").Find(&subs, Submission{FormID: formID}); err != nil {
		return nil, err
	}
	return subs, nil
}

// CountSubmissions returns the total number of stored submissions
// across all forms.
func (conn *Connection) CountSubmissions() (int64, error) {
	return conn.engine.Count(new(Submission))
}

// CountSubmissionsForForm returns the number of submissions of a form.
func (conn *Connection) CountSubmissionsForForm(formID int64) (int64, error) {
	return conn.engine.Count(&Submission{FormID: formID})
}

// HasSubmissionFromIP reports whether the form already received a
// submission from the given address.  Used to enforce single-submission
// forms, where the client address is the only identity available.
func (conn *Connection) HasSubmissionFromIP(formID int64, ip string) (bool, error) {
	if ip == "" {
		return false, nil
	}
	return conn.engine.Exist(&Submission{FormID: formID, IPAddress: ip})
}
