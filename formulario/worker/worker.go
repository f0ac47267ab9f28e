// Package worker runs submission notifications asynchronously so the
// public submit path never waits on delivery.
package worker

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Notice carries everything the notification action needs about one
// received submission.
type Notice struct {
	FormTitle    string
	Recipients   []string
	Subject      string
	SubmissionID string
	SubmittedAt  time.Time
}

// NotifyAction delivers a notice.  The default action logs the
// dispatch; deployments plug in a real transport here.
type NotifyAction func(n *Notice) error

// Worker with a queue for dispatching notices asynchronously.
type Worker struct {
	queue  chan *Notice
	stop   chan bool
	Action NotifyAction
}

func New() *Worker {
	w := new(Worker)
	w.queue = make(chan *Notice, 100)
	w.stop = make(chan bool)
	w.Action = logNotice
	return w
}

// Enqueue adds the notice to the queue.  Notices are fire-and-forget;
// a failed delivery is logged and dropped.
func (w *Worker) Enqueue(n *Notice) {
	w.queue <- n
}

func (w *Worker) Stop() {
	w.stop <- true
}

func (w *Worker) run(n *Notice) {
	if w.Action == nil {
		return
	}
	if err := w.Action(n); err != nil {
		log.Printf("Failed to deliver notification for submission %s: %v", n.SubmissionID, err)
	}
}

func (w *Worker) Start() {
	go func() {
		for {
			select {
			case notice := <-w.queue:
				w.run(notice)
			case <-w.stop:
				return
			}
		}
	}()
	log.Print("Notification worker started")
}

// SubjectLine returns the configured subject or a default built from
// the form title.
func (n *Notice) SubjectLine() string {
	if n.Subject != "" {
		return n.Subject
	}
	return fmt.Sprintf("Nova resposta: %s", n.FormTitle)
}

func logNotice(n *Notice) error {
	log.Printf("Notification %q to [%s] for submission %s", n.SubjectLine(), strings.Join(n.Recipients, ", "), n.SubmissionID)
	return nil
}
