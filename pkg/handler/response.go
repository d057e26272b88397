package handler

import "net/http"

// Response is anything that can write itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}
