package core

import (
	"encoding/json"
	"net/http"
)

// Response renders itself onto the HTTP response.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Status is the body of every message-only response.
type Status struct {
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON responds with status and body encoded as JSON.
func JSON(status int, body any) Response {
	return jsonResponse{status: status, body: body}
}

// Message responds with {"message": msg}.
func Message(status int, msg string) Response {
	return jsonResponse{status: status, body: Status{Message: msg}}
}

// WriteError writes the {"message"} body for err.
func WriteError(w http.ResponseWriter, err error) {
	e := StatusFor(err)
	_ = Message(e.Code, e.Message).Render(w, nil)
}

type withCookie struct {
	Response
	cookie *http.Cookie
}

func (c withCookie) Render(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, c.cookie)
	return c.Response.Render(w, r)
}

// WithCookie sets cookie before rendering resp.
func WithCookie(resp Response, cookie *http.Cookie) Response {
	if cookie == nil {
		return resp
	}
	return withCookie{Response: resp, cookie: cookie}
}
