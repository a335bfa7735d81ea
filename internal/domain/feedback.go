package domain

import "fmt"

// Feedback is a comment left by a guest. It is not linked into the hotel's records.
type Feedback struct {
	ID       int
	Guest    *Guest
	Comments string
}

func NewFeedback(id int, g *Guest, comments string) *Feedback {
	return &Feedback{ID: id, Guest: g, Comments: comments}
}

func (f *Feedback) String() string { return fmt.Sprintf("Feedback %d: %s", f.ID, f.Comments) }
