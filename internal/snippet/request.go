// internal/snippet/request.go
package snippet

// TabstopsFunc yields one request's placeholder specs once the anchor
// position of its inserted text in the final document is known.
type TabstopsFunc func(view View, anchor int) []Spec

// Request is one pending expansion: the literal range being replaced, the
// optional single character that triggered it, and the tabstop callback.
type Request struct {
	From       int
	To         int
	Insert     string
	TriggerKey string // single character, empty when not key-triggered
	Tabstops   TabstopsFunc
}

// Queue is the ordered list of requests waiting to be expanded. One
// expansion pass drains it to empty.
type Queue struct {
	requests []Request
}

// Push appends a request.
func (q *Queue) Push(r Request) {
	q.requests = append(q.requests, r)
}

// Empty reports whether nothing is queued.
func (q *Queue) Empty() bool {
	return len(q.requests) == 0
}

// Len returns the number of queued requests.
func (q *Queue) Len() int {
	return len(q.requests)
}

func (q *Queue) drain() []Request {
	reqs := q.requests
	q.requests = nil
	return reqs
}

func (q *Queue) clear() {
	q.requests = nil
}
